package inventory

import (
	"samara-backend/internal/models"

	"gorm.io/gorm"
)

// sumStockIN: PO'ya ait IN toplamı. excludeID boş değilse o kayıt hariç
// tutulur (edit/delete senaryosu).
func sumStockIN(tx *gorm.DB, poID, excludeID string) (int, error) {
	q := tx.Model(&models.StockIN{}).Where("po_id = ?", poID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var total int64
	if err := q.Select("COALESCE(SUM(qty), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// sumStockOUT: PO'ya ait OUT toplamı.
func sumStockOUT(tx *gorm.DB, poID string) (int, error) {
	var total int64
	err := tx.Model(&models.StockOUT{}).
		Where("po_id = ?", poID).
		Select("COALESCE(SUM(qty), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}
