package invoice

import (
	"fmt"

	"samara-backend/internal/models"

	"gorm.io/gorm"
)

// nextInvoiceNo: mevcut fatura sayısı + 1 (+ deneme ofseti), "SI-00001"
// formatında. Numara unique index ile korunur; eşzamanlı iki istek aynı
// sayıyı üretirse insert çakışır ve çağıran transaction'ı yeniden dener,
// yani iki fatura asla aynı numarayı alamaz.
func nextInvoiceNo(tx *gorm.DB, attempt int) (string, error) {
	var count int64
	if err := tx.Model(&models.Invoice{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("SI-%05d", count+int64(attempt)+1), nil
}
