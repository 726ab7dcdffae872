package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyIncome: gün bazlı gelir girişi. Aynı (şube, kategori, gün) için tek
// kayıt tutulur; tekrar girişte üzerine yazılır.
type DailyIncome struct {
	ID         uint `gorm:"primaryKey"`
	BranchID   uint `gorm:"not null;uniqueIndex:idx_daily_income_key"`
	Branch     Branch
	CategoryID uint `gorm:"not null;uniqueIndex:idx_daily_income_key"`
	Category   Category
	Date       time.Time       `gorm:"not null;uniqueIndex:idx_daily_income_key"`
	Amount     decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
