package models

import "time"

// StockOUT: PO'dan mal çıkışı. invoice_id dolu ise tam olarak bir faturaya
// bağlıdır; hiçbir endpoint StockOUT silmez.
type StockOUT struct {
	ID        string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"size:36;not null;index"`
	Product   Product
	POID      string        `gorm:"column:po_id;size:36;not null;index"`
	PO        PurchaseOrder `gorm:"foreignKey:POID"`
	Date      time.Time     `gorm:"type:date;not null"`
	Qty       int           `gorm:"not null"`
	Note      string        `gorm:"size:255"`
	InvoiceID *string       `gorm:"size:36;index"`
	Invoice   *Invoice
}

func (StockOUT) TableName() string { return "stock_outs" }
