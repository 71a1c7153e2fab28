package models

import "time"

type PurchaseOrder struct {
	ID        string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"size:36;not null;index"`
	Product   Product
	PONo      string `gorm:"column:po_no;size:50;not null;uniqueIndex"`
	POQty     int    `gorm:"column:po_qty;not null"` // sipariş edilen miktar
	CreatedAt time.Time
	IsActive  bool `gorm:"not null;default:true"`
}
