package models

import (
	"time"

	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/period"
)

// StockItem: stok kartı. ProductGroup boşsa değerleme raporunda "Diğer"
// grubunda gösterilir.
type StockItem struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"size:50;not null;unique"` // malzeme kodu
	Name         string `gorm:"size:200;not null"`
	ProductGroup string `gorm:"size:100"`
	Unit         string `gorm:"size:20;not null"` // kg, adet, koli vs.
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockPrice: zaman aralıklı birim fiyat. Aynı malzeme kodu için iki aktif
// kayıt aynı geçerlilik başlangıcını paylaşamaz; yine de olursa çözümleme en
// yüksek ID'li kaydı seçer.
type StockPrice struct {
	ID        uint            `gorm:"primaryKey"`
	ItemCode  string          `gorm:"size:50;index;not null"`
	ValidFrom time.Time       `gorm:"index;not null"` // geçerlilik başlangıç tarihi
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	BranchID  uint            `gorm:"index;not null"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// StockCount: dönem sonu sayım. (malzeme, dönem, şube) başına tek kayıt;
// tekrar girişte üzerine yazılır. Eksik sayım 0 miktar demektir, tahmin
// yapılmaz.
type StockCount struct {
	ID        uint            `gorm:"primaryKey"`
	ItemCode  string          `gorm:"size:50;not null;uniqueIndex:idx_stock_count_key"`
	Period    period.Period   `gorm:"size:4;not null;uniqueIndex:idx_stock_count_key"`
	BranchID  uint            `gorm:"not null;uniqueIndex:idx_stock_count_key"`
	Quantity  decimal.Decimal `gorm:"type:numeric(15,3);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
