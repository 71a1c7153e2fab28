package models

import "time"

// HistoryLog: append-only işlem kaydı. Her mutasyon aynı transaction içinde
// tam olarak bir satır yazar; satırlar asla güncellenmez veya silinmez.
type HistoryLog struct {
	ID      uint      `gorm:"primaryKey"`
	TS      time.Time `gorm:"column:ts;not null;index"`
	Action  string    `gorm:"size:100;not null"`
	By      string    `gorm:"size:50;not null"`
	Details string    `gorm:"type:text"`
	RefType string    `gorm:"size:50;index"` // ör: "product", "invoice"
	RefID   string    `gorm:"size:36;index"`
}
