package models

// Material: ürüne bağlı hammadde. Silme soft delete (is_active = false).
type Material struct {
	ID        string  `gorm:"primaryKey;size:36"`
	ProductID string  `gorm:"size:36;not null;index"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE"`
	Name      string  `gorm:"size:100;not null"`
	IsActive  bool    `gorm:"not null;default:true"`
}
