package reconciliation

import (
	"gorm.io/gorm"

	"mutabakat-backend/internal/models"
)

// Snapshot motorun tek hesaplamada gördüğü, tamamen yüklenmiş veri kümesi.
// Motor kayıtları değiştirmez; koleksiyonlardan biri değiştiğinde çağıran
// yeni snapshot yükleyip yeni View kurar.
type Snapshot struct {
	Groups         []models.CategoryGroup
	Categories     []models.Category
	Invoices       []models.Invoice
	StatementLines []models.StatementLine
	ManualExpenses []models.ManualExpense
	DailyIncomes   []models.DailyIncome
	StockItems     []models.StockItem
	StockPrices    []models.StockPrice
	StockCounts    []models.StockCount
	Vouchers       []models.Voucher
	InvoiceRefs    []models.InvoiceReference
}

// LoadSnapshot şubenin tüm kaynak koleksiyonlarını tek seferde çeker.
// Kategori ve stok tanımları şubeden bağımsızdır, tamamı yüklenir.
func LoadSnapshot(db *gorm.DB, branchID uint) (Snapshot, error) {
	var snap Snapshot

	if err := db.Find(&snap.Groups).Error; err != nil {
		return snap, err
	}
	if err := db.Find(&snap.Categories).Error; err != nil {
		return snap, err
	}
	if err := db.Where("branch_id = ?", branchID).Find(&snap.Invoices).Error; err != nil {
		return snap, err
	}
	if err := db.Where("branch_id = ?", branchID).Find(&snap.StatementLines).Error; err != nil {
		return snap, err
	}
	if err := db.Where("branch_id = ?", branchID).Find(&snap.ManualExpenses).Error; err != nil {
		return snap, err
	}
	if err := db.Where("branch_id = ?", branchID).Find(&snap.DailyIncomes).Error; err != nil {
		return snap, err
	}
	if err := db.Find(&snap.StockItems).Error; err != nil {
		return snap, err
	}
	if err := db.Find(&snap.StockPrices).Error; err != nil {
		return snap, err
	}
	if err := db.Where("branch_id = ?", branchID).Find(&snap.StockCounts).Error; err != nil {
		return snap, err
	}
	if err := db.Where("branch_id = ?", branchID).Find(&snap.Vouchers).Error; err != nil {
		return snap, err
	}
	if err := db.Find(&snap.InvoiceRefs).Error; err != nil {
		return snap, err
	}

	return snap, nil
}
