package models

import "time"

const (
	InvoiceStatusDraft   = "Draft"
	InvoiceStatusReady   = "Ready"
	InvoiceStatusPrinted = "Printed"
)

type Invoice struct {
	ID        string    `gorm:"primaryKey;size:36"`
	InvoiceNo string    `gorm:"size:20;not null;uniqueIndex"`
	Date      time.Time `gorm:"type:date;not null"`
	// Draft -> Ready -> Printed; "Printed" print_count'u artırır ve kalem
	// üyeliğini dondurur. Status değeri enum olarak zorlanmıyor.
	Status     string `gorm:"size:20;not null;default:Draft"`
	PrintCount int    `gorm:"not null;default:0"`

	Outs []StockOUT `gorm:"foreignKey:InvoiceID"`
}
