package models

import "time"

// StockIN: PO'ya karşı fiziksel mal girişi. Bakiye kuralı yeniden
// doğrulandıktan sonra hard delete edilebilir.
type StockIN struct {
	ID     string        `gorm:"primaryKey;size:36"`
	POID   string        `gorm:"column:po_id;size:36;not null;index"`
	PO     PurchaseOrder `gorm:"foreignKey:POID;constraint:OnDelete:CASCADE"`
	Date   time.Time     `gorm:"type:date;not null"`
	Qty    int           `gorm:"not null"`
	Note   string        `gorm:"size:255"`
	Edited bool          `gorm:"not null;default:false"` // bir kez düzenlendiyse true kalır
}

func (StockIN) TableName() string { return "stock_ins" }
