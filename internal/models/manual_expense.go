package models

import (
	"time"

	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/period"
)

type ExpensePaymentType string

const (
	ExpenseCash       ExpensePaymentType = "Nakit"
	ExpenseBank       ExpensePaymentType = "Banka Ödeme"
	ExpenseCreditCard ExpensePaymentType = "Kredi Kartı"
)

// ManualExpense: elle girilen diğer harcama kaydı. Dönem belge tarihinden
// türetilir ama yetkili kullanıcı tarafından değiştirilebilir.
type ManualExpense struct {
	ID           uint `gorm:"primaryKey"`
	BranchID     uint `gorm:"index;not null"`
	Branch       Branch
	CategoryID   uint `gorm:"index;not null"`
	Category     Category
	PayeeName    string          `gorm:"size:200;not null"` // alıcı adı
	DocumentNo   string          `gorm:"size:50"`
	DocumentDate time.Time       `gorm:"index;not null"`
	Period       period.Period   `gorm:"size:4;index;not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	PaymentType  ExpensePaymentType `gorm:"size:20;not null"`
	DailyExpense bool            `gorm:"not null;default:false"`
	Description  string          `gorm:"size:45"`
	CreatedAt    time.Time
}
