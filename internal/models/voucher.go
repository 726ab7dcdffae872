package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher: yemek çeki. Geçerlilik aralığı [FirstDate, LastDate] birden fazla
// döneme yayılabilir; dönem payı VoucherAllocator tarafından hesaplanır.
// Düzeltme kayıtlarında FaceAmount negatif olabilir.
type Voucher struct {
	ID          uint `gorm:"primaryKey"`
	BranchID    uint `gorm:"index;not null"`
	Branch      Branch
	CategoryID  uint `gorm:"index;not null"`
	Category    Category
	FaceAmount  decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	FirstDate   time.Time       `gorm:"not null"` // geçerlilik ilk tarih
	LastDate    time.Time       `gorm:"not null"` // geçerlilik son tarih
	PaymentDate *time.Time
	CreatedAt   time.Time
}
