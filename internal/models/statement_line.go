package models

import (
	"time"

	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/period"
)

// StatementLine: B2B ekstre satırı. Dönem, satır tarihinden bağımsız tutulur;
// operatör taşıyabilir. Borç/alacak asimetrisi nedeniyle negatif tutarlar
// geçerlidir.
type StatementLine struct {
	ID          uint `gorm:"primaryKey"`
	BranchID    uint `gorm:"index;not null"`
	Branch      Branch
	CategoryID  *uint `gorm:"index"`
	Category    *Category
	Date        time.Time       `gorm:"index;not null"`
	SlipNo      string          `gorm:"size:50;not null"`
	SlipType    string          `gorm:"size:50"`
	Debit       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Credit      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Period      period.Period   `gorm:"size:4;index;not null"`
	Description string
	CreatedAt   time.Time
}
