package database

import (
	"database/sql"
	"log"

	"samara-backend/internal/config"
	"samara-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Serializable: stok bakiyesi ve fatura kontrolleri önce aggregate okuyup
// sonra yazdığı için tüm mutasyon transaction'ları bu izolasyonla açılır.
var Serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

func Init(cfg *config.Config) {
	var err error

	// TranslateError: unique ihlalleri gorm.ErrDuplicatedKey olarak gelsin,
	// fatura numarası retry döngüsü buna dayanıyor.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate testlerde sqlite üzerinde de çağrılıyor.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Material{},
		&models.PurchaseOrder{},
		&models.StockIN{},
		&models.StockOUT{},
		&models.Invoice{},
		&models.HistoryLog{},
	)
}
