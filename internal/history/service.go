package history

import (
	"time"

	"samara-backend/internal/models"

	"gorm.io/gorm"
)

// Sistemde kullanıcı modeli yok, tüm kayıtlar sabit aktöre yazılır.
const DefaultActor = "Admin"

// Record, mutasyonla AYNI transaction içinde tek bir HistoryLog satırı yazar.
// tx rollback olursa log satırı da gider; bağımsız bir hata yolu yoktur,
// persistence hatası mutasyonun hatası gibi yukarı döner.
func Record(tx *gorm.DB, action, details, refType, refID string) error {
	entry := models.HistoryLog{
		TS:      time.Now().UTC(),
		Action:  action,
		By:      DefaultActor,
		Details: details,
		RefType: refType,
		RefID:   refID,
	}
	return tx.Create(&entry).Error
}
