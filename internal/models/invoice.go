package models

import (
	"time"

	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/period"
)

// Invoice: e-fatura kaydı. Kategori atanana kadar CategoryID null kalır ve
// kayıt "kategorilendirilmemiş" kuyruğunda görünür.
type Invoice struct {
	ID           uint `gorm:"primaryKey"`
	BranchID     uint `gorm:"index;not null"`
	Branch       Branch
	CategoryID   *uint `gorm:"index"`
	Category     *Category
	InvoiceNo    string          `gorm:"size:50;not null;unique"`
	BuyerName    string          `gorm:"size:200;not null"` // alıcı ünvanı
	Amount       decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	DocumentDate time.Time       `gorm:"index;not null"`
	Period       period.Period   `gorm:"size:4;index;not null"` // belge tarihinden bağımsız atanabilir
	DailyExpense bool            `gorm:"not null;default:false"`
	Outgoing     bool            `gorm:"not null;default:false"` // giden fatura
	Description  string          `gorm:"size:255"`
	CreatedAt    time.Time
}

// InvoiceReference: yemek çeki kategorilerine bağlı karşı taraf ünvanları.
// Fatura eşleştirme sezgiseli bu tablodan beslenir.
type InvoiceReference struct {
	ID               uint   `gorm:"primaryKey"`
	CounterpartyName string `gorm:"size:200;not null;uniqueIndex"`
	CategoryID       uint   `gorm:"index;not null"`
	Category         Category
	CreatedAt        time.Time
}
