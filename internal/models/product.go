package models

import "github.com/shopspring/decimal"

type Product struct {
	ID       string          `gorm:"primaryKey;size:36"`
	Name     string          `gorm:"size:100;not null;index"`
	Code     string          `gorm:"size:50;not null;uniqueIndex"`
	Rate     decimal.Decimal `gorm:"type:numeric(12,2);not null"` // birim fiyat
	IsActive bool            `gorm:"not null;default:true"`
}
