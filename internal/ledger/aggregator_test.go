package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutabakat-backend/internal/category"
	"mutabakat-backend/internal/ledger"
	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/period"
)

const branchID = 1

func uintPtr(v uint) *uint { return &v }

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testIndex() *category.Index {
	groups := []models.CategoryGroup{{ID: 1, Name: "Grup", Active: true}}
	cats := []models.Category{
		{ID: 10, GroupID: uintPtr(1), Name: "Nakit Gelir", Type: models.CategoryIncome, Active: true},
		{ID: 20, GroupID: uintPtr(1), Name: "Kira", Type: models.CategoryExpense, Active: true},
		{ID: 30, GroupID: uintPtr(1), Name: "Tedarikçi", Type: models.CategoryPayable, Active: true},
	}
	return category.NewIndex(groups, cats)
}

func incomeEntry(categoryID uint, date string, amount float64) models.DailyIncome {
	d, _ := time.Parse("2006-01-02", date)
	return models.DailyIncome{BranchID: branchID, CategoryID: categoryID, Date: d, Amount: dec(amount)}
}

func TestTotal_NonzeroTargetPeriod_NoLookback(t *testing.T) {
	src := ledger.Sources{
		DailyIncomes: []models.DailyIncome{
			incomeEntry(10, "2025-08-05", 100),
			incomeEntry(10, "2025-08-06", 150),
			incomeEntry(10, "2025-07-10", 999), // önceki dönem, karışmamalı
		},
	}
	a := ledger.NewAggregator(branchID, testIndex(), src)

	for _, lookback := range []int{0, 3, 6} {
		tot, err := a.TotalForCategoryPeriod(10, "2508", lookback)
		require.NoError(t, err)
		assert.True(t, dec(250).Equal(tot.Value), "value: %s", tot.Value)
		assert.Equal(t, period.Period("2508"), tot.PeriodUsed)
		assert.False(t, tot.FromPreviousPeriod)
	}
}

func TestTotal_LookbackWalk(t *testing.T) {
	// 2508 ve 2507 boş, 2506'da 500 var
	src := ledger.Sources{
		DailyIncomes: []models.DailyIncome{incomeEntry(10, "2025-06-15", 500)},
	}
	a := ledger.NewAggregator(branchID, testIndex(), src)

	tot, err := a.TotalForCategoryPeriod(10, "2508", 6)
	require.NoError(t, err)
	assert.True(t, dec(500).Equal(tot.Value))
	assert.Equal(t, period.Period("2506"), tot.PeriodUsed)
	assert.True(t, tot.FromPreviousPeriod)
}

func TestTotal_TargetPeriodZero_NotSkipped(t *testing.T) {
	// Hedef dönemde kayıt VAR ama toplamı sıfır: "bu ay gelir sıfır" demektir,
	// geriye bakılmaz. Asimetri bilinçli; önceki aydaki 500 dönmemeli.
	src := ledger.Sources{
		DailyIncomes: []models.DailyIncome{
			incomeEntry(10, "2025-08-05", 0),
			incomeEntry(10, "2025-07-01", 500),
		},
	}
	a := ledger.NewAggregator(branchID, testIndex(), src)

	tot, err := a.TotalForCategoryPeriod(10, "2508", 6)
	require.NoError(t, err)
	assert.True(t, tot.Value.IsZero())
	assert.Equal(t, period.Period("2508"), tot.PeriodUsed)
	assert.False(t, tot.FromPreviousPeriod)
}

func TestTotal_LookbackExhausted(t *testing.T) {
	src := ledger.Sources{
		DailyIncomes: []models.DailyIncome{incomeEntry(10, "2024-01-05", 500)}, // çok eski
	}
	a := ledger.NewAggregator(branchID, testIndex(), src)

	tot, err := a.TotalForCategoryPeriod(10, "2508", 6)
	require.NoError(t, err)
	assert.True(t, tot.Value.IsZero())
	assert.Equal(t, period.Period("2508"), tot.PeriodUsed)
	assert.False(t, tot.FromPreviousPeriod)
}

func TestTotal_NegativeLookbackRejected(t *testing.T) {
	a := ledger.NewAggregator(branchID, testIndex(), ledger.Sources{})
	_, err := a.TotalForCategoryPeriod(10, "2508", -1)
	assert.ErrorIs(t, err, ledger.ErrNegativeLookback)
}

func TestExpense_CombinesSources(t *testing.T) {
	docDate, _ := time.Parse("2006-01-02", "2025-08-10")
	src := ledger.Sources{
		Invoices: []models.Invoice{
			{BranchID: branchID, CategoryID: uintPtr(20), Amount: dec(1000), DocumentDate: docDate, Period: "2508"},
			{BranchID: branchID, CategoryID: uintPtr(20), Amount: dec(400), DocumentDate: docDate, Period: "2508", Outgoing: true}, // giden fatura sayılmaz
		},
		ManualExpenses: []models.ManualExpense{
			{BranchID: branchID, CategoryID: 20, Amount: dec(250), DocumentDate: docDate, Period: "2508"},
		},
		StatementLines: []models.StatementLine{
			{BranchID: branchID, CategoryID: uintPtr(20), Debit: dec(300), Credit: dec(120), Date: docDate, Period: "2508"},
		},
	}
	a := ledger.NewAggregator(branchID, testIndex(), src)

	tot, err := a.TotalForCategoryPeriod(20, "2508", 6)
	require.NoError(t, err)
	// 1000 fatura + 250 harcama + 300 ekstre borç; giden fatura ve alacak hariç
	assert.True(t, dec(1550).Equal(tot.Value), "value: %s", tot.Value)
}

func TestPayable_UsesStatementCredit(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2025-08-10")
	src := ledger.Sources{
		StatementLines: []models.StatementLine{
			{BranchID: branchID, CategoryID: uintPtr(30), Debit: dec(75), Credit: dec(900), Date: d, Period: "2508"},
		},
	}
	a := ledger.NewAggregator(branchID, testIndex(), src)

	tot, err := a.TotalForCategoryPeriod(30, "2508", 0)
	require.NoError(t, err)
	assert.True(t, dec(900).Equal(tot.Value))
}

func TestOtherBranchExcluded(t *testing.T) {
	src := ledger.Sources{
		DailyIncomes: []models.DailyIncome{
			incomeEntry(10, "2025-08-05", 100),
			{BranchID: 2, CategoryID: 10, Date: time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), Amount: dec(9999)},
		},
	}
	a := ledger.NewAggregator(branchID, testIndex(), src)

	tot, err := a.TotalForCategoryPeriod(10, "2508", 0)
	require.NoError(t, err)
	assert.True(t, dec(100).Equal(tot.Value))
}

func TestUnassignedAndUnresolvedCounts(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2025-08-10")
	src := ledger.Sources{
		Invoices: []models.Invoice{
			{BranchID: branchID, CategoryID: nil, Amount: dec(10), DocumentDate: d, Period: "2508"},
			{BranchID: branchID, CategoryID: uintPtr(77), Amount: dec(20), DocumentDate: d, Period: "2508"}, // indekste yok
		},
		StatementLines: []models.StatementLine{
			{BranchID: branchID, CategoryID: nil, Debit: dec(5), Date: d, Period: "2508"},
		},
	}
	a := ledger.NewAggregator(branchID, testIndex(), src)

	assert.Equal(t, 2, a.UnassignedCount())
	assert.Equal(t, 1, a.UnresolvedCount())

	// bilinmeyen kategori sorulursa hata yerine sıfır döner
	tot, err := a.TotalForCategoryPeriod(77, "2508", 6)
	require.NoError(t, err)
	assert.True(t, tot.Value.IsZero())
}

func TestUnassignedFilters(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2025-08-10")
	invs := []models.Invoice{
		{ID: 1, CategoryID: nil, DocumentDate: d},
		{ID: 2, CategoryID: uintPtr(20), DocumentDate: d},
	}
	lines := []models.StatementLine{
		{ID: 3, CategoryID: nil, Date: d},
		{ID: 4, CategoryID: uintPtr(20), Date: d},
	}

	gotInv := ledger.UnassignedInvoices(invs)
	require.Len(t, gotInv, 1)
	assert.Equal(t, uint(1), gotInv[0].ID)

	gotLines := ledger.UnassignedStatementLines(lines)
	require.Len(t, gotLines, 1)
	assert.Equal(t, uint(3), gotLines[0].ID)
}
