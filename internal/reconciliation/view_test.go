package reconciliation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/reconciliation"
)

const branchID = 1

func uintPtr(v uint) *uint { return &v }

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// testSnapshot: iki gelir kategorisi (Nakit, Yemek Çeki), iki gider
// kategorisi (Kira gruplu, Noter grupsuz) ve küçük bir stok kümesi.
func testSnapshot() reconciliation.Snapshot {
	return reconciliation.Snapshot{
		Groups: []models.CategoryGroup{
			{ID: 1, Name: "Satış Gelirleri", Active: true},
			{ID: 2, Name: "Sabit Giderler", Active: true},
		},
		Categories: []models.Category{
			{ID: 10, GroupID: uintPtr(1), Name: "Nakit", Type: models.CategoryIncome, Active: true},
			{ID: 11, GroupID: uintPtr(1), Name: "Yemek Çeki", Type: models.CategoryIncome, Active: true},
			{ID: 20, GroupID: uintPtr(2), Name: "Kira", Type: models.CategoryExpense, Active: true},
			{ID: 21, Name: "Noter", Type: models.CategoryExpense, Active: true},
		},
		DailyIncomes: []models.DailyIncome{
			{BranchID: branchID, CategoryID: 10, Date: day("2025-08-05"), Amount: dec(600)},
			{BranchID: branchID, CategoryID: 10, Date: day("2025-08-12"), Amount: dec(400)},
			{BranchID: branchID, CategoryID: 11, Date: day("2025-08-20"), Amount: dec(500)},
		},
		ManualExpenses: []models.ManualExpense{
			{BranchID: branchID, CategoryID: 20, Period: "2507", Amount: dec(300), PaymentType: models.ExpenseCash},
			{BranchID: branchID, CategoryID: 21, Period: "2508", Amount: dec(100), PaymentType: models.ExpenseCash},
		},
		StockItems: []models.StockItem{
			{Code: "ET-01", Name: "Dana Kuşbaşı", ProductGroup: "Et Ürünleri", Unit: "kg", Active: true},
		},
		StockPrices: []models.StockPrice{
			{ID: 1, ItemCode: "ET-01", ValidFrom: day("2025-06-01"), Price: dec(100), BranchID: branchID, Active: true},
		},
		StockCounts: []models.StockCount{
			{ItemCode: "ET-01", Period: "2507", BranchID: branchID, Quantity: dec(2)},
			{ItemCode: "ET-01", Period: "2508", BranchID: branchID, Quantity: dec(5)},
		},
		Vouchers: []models.Voucher{
			{ID: 1, BranchID: branchID, CategoryID: 11, FaceAmount: dec(500),
				FirstDate: day("2025-08-01"), LastDate: day("2025-08-31")},
		},
	}
}

func TestReport_RowOrderAndTotals(t *testing.T) {
	v := reconciliation.NewView(branchID, testSnapshot())

	rep, err := v.Report("2508", false)
	require.NoError(t, err)

	// gelir bölümü: başlık, grup satırı, iki kategori, TOPLAM
	require.Len(t, rep.Income, 5)
	assert.Equal(t, reconciliation.RowTitle, rep.Income[0].Kind)
	assert.Equal(t, "GELİRLER", rep.Income[0].Label)
	assert.Equal(t, reconciliation.RowGroup, rep.Income[1].Kind)
	assert.Equal(t, "Satış Gelirleri", rep.Income[1].Label)
	assert.True(t, rep.Income[1].Value.Equal(dec(1500)))
	assert.Equal(t, "Nakit", rep.Income[2].Label)
	assert.Equal(t, "Yemek Çeki", rep.Income[3].Label)
	assert.Equal(t, reconciliation.RowGrandTotal, rep.Income[4].Kind)
	assert.True(t, rep.Income[4].Value.Equal(dec(1500)))
	assert.True(t, rep.TotalIncome.Equal(dec(1500)))

	// gider bölümü: başlık, grup, Kira, Gruplandırılmamış, Noter, TOPLAM
	require.Len(t, rep.Expense, 6)
	assert.Equal(t, "Sabit Giderler", rep.Expense[1].Label)
	assert.Equal(t, "Kira", rep.Expense[2].Label)
	assert.Equal(t, "Gruplandırılmamış", rep.Expense[3].Label)
	assert.Equal(t, "Noter", rep.Expense[4].Label)
	assert.True(t, rep.TotalExpense.Equal(dec(400)))
}

func TestReport_LookbackFlagPropagates(t *testing.T) {
	v := reconciliation.NewView(branchID, testSnapshot())

	rep, err := v.Report("2508", false)
	require.NoError(t, err)

	// Kira 2508'de boş, 2507'den taşınır
	kira := rep.Expense[2]
	require.Equal(t, "Kira", kira.Label)
	assert.True(t, kira.Value.Equal(dec(300)))
	assert.True(t, kira.FromPreviousPeriod)
	assert.Equal(t, "2507", string(kira.PeriodUsed))

	// grup toplamı taşınan değeri içerir ama kendisi işaretlenmez
	assert.True(t, rep.Expense[1].Value.Equal(dec(300)))
	assert.False(t, rep.Expense[1].FromPreviousPeriod)
}

func TestReport_PercentagesAgainstIncomeTotal(t *testing.T) {
	v := reconciliation.NewView(branchID, testSnapshot())

	rep, err := v.Report("2508", false)
	require.NoError(t, err)

	// Nakit 1000 / 1500 = %66.67 civarı
	nakit := rep.Income[2]
	require.NotNil(t, nakit.Percentage)
	assert.True(t, nakit.Percentage.Round(2).Equal(dec(66.67)))

	// gider yüzdeleri de gelir toplamına oranlanır: Kira 300/1500 = %20
	kira := rep.Expense[2]
	require.NotNil(t, kira.Percentage)
	assert.True(t, kira.Percentage.Equal(dec(20)))

	// başlık satırına yüzde yazılmaz
	assert.Nil(t, rep.Income[0].Percentage)
}

func TestReport_ZeroRowRenderedWithoutPercentage(t *testing.T) {
	snap := testSnapshot()
	snap.Categories = append(snap.Categories, models.Category{
		ID: 22, GroupID: uintPtr(2), Name: "Sigorta", Type: models.CategoryExpense, Active: true,
	})
	v := reconciliation.NewView(branchID, snap)

	rep, err := v.Report("2508", false)
	require.NoError(t, err)

	var sigorta *reconciliation.Row
	for i := range rep.Expense {
		if rep.Expense[i].Label == "Sigorta" {
			sigorta = &rep.Expense[i]
		}
	}
	require.NotNil(t, sigorta, "sıfır değerli satır da listelenmeli")
	assert.True(t, sigorta.Value.IsZero())
	assert.Nil(t, sigorta.Percentage)
}

func TestReport_ZeroIncomeTotal_NoPercentages(t *testing.T) {
	snap := testSnapshot()
	snap.DailyIncomes = nil
	v := reconciliation.NewView(branchID, snap)

	rep, err := v.Report("2508", false)
	require.NoError(t, err)

	for _, r := range rep.Expense {
		assert.Nil(t, r.Percentage)
	}
}

func TestReport_HiddenCategoryVisibility(t *testing.T) {
	snap := testSnapshot()
	snap.Categories = append(snap.Categories, models.Category{
		ID: 12, GroupID: uintPtr(1), Name: "Özel Gelir", Type: models.CategoryIncome, Active: true, Hidden: true,
	})
	snap.DailyIncomes = append(snap.DailyIncomes,
		models.DailyIncome{BranchID: branchID, CategoryID: 12, Date: day("2025-08-10"), Amount: dec(250)})

	v := reconciliation.NewView(branchID, snap)

	rep, err := v.Report("2508", false)
	require.NoError(t, err)
	assert.True(t, rep.TotalIncome.Equal(dec(1500)), "yetkisiz görünümde gizli kategori toplam dışı")

	rep, err = v.Report("2508", true)
	require.NoError(t, err)
	assert.True(t, rep.TotalIncome.Equal(dec(1750)))

	var found bool
	for _, r := range rep.Income {
		if r.Hidden {
			found = true
			assert.Equal(t, "Özel Gelir (Gizli)", r.Label)
		}
	}
	assert.True(t, found)
}

func TestReport_StockBlockAndProfit(t *testing.T) {
	v := reconciliation.NewView(branchID, testSnapshot())

	rep, err := v.Report("2508", false)
	require.NoError(t, err)

	assert.True(t, rep.StockValue.Equal(dec(500)))
	assert.True(t, rep.PreviousStockValue.Equal(dec(200)))
	assert.True(t, rep.StockDelta.Equal(dec(300)))

	// cirodan kalan 1500-400=1100, dönem kâr/zararı 1100+300=1400
	assert.True(t, rep.NetFromRevenue.Equal(dec(1100)))
	assert.True(t, rep.PeriodProfit.Equal(dec(1400)))
}

func TestReport_GapCounts(t *testing.T) {
	snap := testSnapshot()
	snap.Invoices = append(snap.Invoices,
		models.Invoice{ID: 1, BranchID: branchID, InvoiceNo: "F-1", Amount: dec(10), Period: "2508"},          // kategorisiz
		models.Invoice{ID: 2, BranchID: branchID, CategoryID: uintPtr(999), InvoiceNo: "F-2", Amount: dec(10), Period: "2508"}, // silinmiş kategori
	)
	v := reconciliation.NewView(branchID, snap)

	rep, err := v.Report("2508", false)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.UnassignedCount)
	assert.Equal(t, 1, rep.UnresolvedCount)
}

func TestVoucherReport_GroupsAndDifference(t *testing.T) {
	snap := testSnapshot()
	// ikinci çek aynı kategoride, üç döneme yayılıyor: 2025-07-15..09-15
	snap.Vouchers = append(snap.Vouchers, models.Voucher{
		ID: 2, BranchID: branchID, CategoryID: 11, FaceAmount: dec(900),
		FirstDate: day("2025-07-15"), LastDate: day("2025-09-15"),
	})
	// pencere içi ama ağustos dışı gelirler
	snap.DailyIncomes = append(snap.DailyIncomes,
		models.DailyIncome{BranchID: branchID, CategoryID: 11, Date: day("2025-07-20"), Amount: dec(300)},
		models.DailyIncome{BranchID: branchID, CategoryID: 11, Date: day("2025-09-05"), Amount: dec(200)},
	)
	v := reconciliation.NewView(branchID, snap)

	sum := v.VoucherReport("2508")

	require.Len(t, sum.Groups, 1)
	g := sum.Groups[0]
	assert.Equal(t, "Yemek Çeki", g.Category.Name)
	assert.Equal(t, 2, sum.VoucherCount)

	// aylık gelir yalnız ağustos kayıtları: 500
	assert.True(t, g.MonthlyIncome.Equal(dec(500)))
	// çek 1 payı 500, çek 2 payı 900-300-200=400
	assert.True(t, g.PeriodTotal.Equal(dec(900)))
	assert.True(t, g.Difference.Equal(dec(400)))
	assert.True(t, sum.TotalDifference.Equal(dec(400)))
}

func TestVoucherReport_ExcludesNonOverlapping(t *testing.T) {
	snap := testSnapshot()
	snap.Vouchers = append(snap.Vouchers, models.Voucher{
		ID: 3, BranchID: branchID, CategoryID: 11, FaceAmount: dec(100),
		FirstDate: day("2025-06-01"), LastDate: day("2025-06-30"),
	})
	v := reconciliation.NewView(branchID, snap)

	sum := v.VoucherReport("2508")
	assert.Equal(t, 1, sum.VoucherCount)
}

func TestStockValuation_GroupBreakdown(t *testing.T) {
	v := reconciliation.NewView(branchID, testSnapshot())

	groups := v.StockValuation("2508")
	require.Len(t, groups, 1)
	assert.Equal(t, "Et Ürünleri", groups[0].Group)
	assert.True(t, groups[0].Subtotal.Equal(dec(500)))
}
