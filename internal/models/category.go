package models

import "time"

type CategoryType string

const (
	CategoryIncome          CategoryType = "Gelir"
	CategoryExpense         CategoryType = "Gider"
	CategoryInfo            CategoryType = "Bilgi"
	CategoryPayable         CategoryType = "Ödeme"
	CategoryOutgoingInvoice CategoryType = "Giden Fatura"
)

// CategoryGroup: üst kategori. Kategoriler bunun altında raporlanır.
type CategoryGroup struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Categories []Category `gorm:"foreignKey:GroupID"`
}

// Category: iki seviyeli hiyerarşinin yaprağı. Hiç silinmez, sadece pasife
// çekilir. Gizli kategoriler yalnızca yetkili kullanıcılara görünür.
type Category struct {
	ID        uint  `gorm:"primaryKey"`
	GroupID   *uint `gorm:"index"` // üst kategorisiz kategoriler "gruplandırılmamış" raporlanır
	Group     *CategoryGroup
	Name      string       `gorm:"size:100;not null"`
	Type      CategoryType `gorm:"size:20;not null"` // Gelir / Gider / Bilgi / Ödeme / Giden Fatura
	Active    bool         `gorm:"not null;default:true"`
	Hidden    bool         `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
