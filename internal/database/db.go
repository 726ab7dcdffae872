package database

import (
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mutabakat-backend/internal/config"
	"mutabakat-backend/internal/models"
)

var DB *gorm.DB

func Init(cfg *config.Config, log zerolog.Logger) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Veritabanına bağlanılamadı")
	}

	err = DB.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.CategoryGroup{},
		&models.Category{},
		&models.Invoice{},
		&models.InvoiceReference{},
		&models.StatementLine{},
		&models.ManualExpense{},
		&models.DailyIncome{},
		&models.StockItem{},
		&models.StockPrice{},
		&models.StockCount{},
		&models.Voucher{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate hatası")
	}

	log.Info().Msg("Veritabanı bağlantısı başarılı, migration tamamlandı")
}
