package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/pricing"
	"mutabakat-backend/internal/stock"
)

const branchID = 1

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testValuator() *stock.Valuator {
	resolver := pricing.NewResolver([]models.StockPrice{
		{ID: 1, ItemCode: "TAV-001", ValidFrom: date("2025-01-01"), Price: dec(100), Active: true},
		{ID: 2, ItemCode: "TAV-001", ValidFrom: date("2025-08-01"), Price: dec(120), Active: true},
		{ID: 3, ItemCode: "ICE-001", ValidFrom: date("2025-01-01"), Price: dec(10), Active: true},
		{ID: 4, ItemCode: "MSC-001", ValidFrom: date("2025-01-01"), Price: dec(5), Active: true},
	})
	items := []models.StockItem{
		{ID: 1, Code: "TAV-001", Name: "Tavuk But", ProductGroup: "Et Ürünleri", Unit: "kg", Active: true},
		{ID: 2, Code: "ICE-001", Name: "Kola", ProductGroup: "İçecek", Unit: "adet", Active: true},
		{ID: 3, Code: "MSC-001", Name: "Peçete", ProductGroup: "", Unit: "koli", Active: true}, // grupsuz
		{ID: 4, Code: "OLD-001", Name: "Eski Ürün", ProductGroup: "Et Ürünleri", Unit: "kg", Active: false},
	}
	counts := []models.StockCount{
		{ItemCode: "TAV-001", Period: "2508", BranchID: branchID, Quantity: dec(50)},
		{ItemCode: "TAV-001", Period: "2507", BranchID: branchID, Quantity: dec(30)},
		{ItemCode: "ICE-001", Period: "2508", BranchID: branchID, Quantity: dec(200)},
		{ItemCode: "ICE-001", Period: "2507", BranchID: branchID, Quantity: dec(180)},
		{ItemCode: "MSC-001", Period: "2508", BranchID: branchID, Quantity: dec(10)},
		{ItemCode: "OLD-001", Period: "2508", BranchID: branchID, Quantity: dec(999)},
		{ItemCode: "TAV-001", Period: "2508", BranchID: 2, Quantity: dec(777)}, // başka şube
	}
	return stock.NewValuator(resolver, items, counts)
}

func TestValuation_GroupsAndSubtotals(t *testing.T) {
	v := testValuator()

	groups := v.Valuation("2508", branchID)
	require.Len(t, groups, 3)

	byName := make(map[string]stock.GroupValuation)
	for _, g := range groups {
		byName[g.Group] = g
	}

	et := byName["Et Ürünleri"]
	// 50 kg × 120 (Ağustos fiyatı); pasif ürün değerlemeye girmez
	require.Len(t, et.Items, 1)
	assert.True(t, dec(6000).Equal(et.Subtotal), "subtotal: %s", et.Subtotal)

	icecek := byName["İçecek"]
	assert.True(t, dec(2000).Equal(icecek.Subtotal))

	// grupsuz malzeme "Diğer" altında toplanır
	diger, ok := byName[stock.FallbackGroup]
	require.True(t, ok)
	assert.True(t, dec(50).Equal(diger.Subtotal))
}

func TestValuation_MissingCountIsZero(t *testing.T) {
	v := testValuator()

	// 2506'da hiç sayım yok: miktarlar 0, toplam 0
	assert.True(t, v.Total("2506", branchID).IsZero())
	assert.True(t, v.Quantity("TAV-001", "2506", branchID).IsZero())
}

func TestDelta_MatchesPerItemDeltas(t *testing.T) {
	v := testValuator()

	// 2508: 50×120 + 200×10 + 10×5 = 8050
	// 2507: 30×100 + 180×10 + 0×5 = 4800 (Temmuz'da TAV fiyatı hâlâ 100)
	total2508 := v.Total("2508", branchID)
	total2507 := v.Total("2507", branchID)
	assert.True(t, dec(8050).Equal(total2508), "2508: %s", total2508)
	assert.True(t, dec(4800).Equal(total2507), "2507: %s", total2507)

	delta := v.Delta("2508", branchID)
	assert.True(t, total2508.Sub(total2507).Equal(delta))
	assert.True(t, dec(3250).Equal(delta))
}

func TestValuation_BranchScoped(t *testing.T) {
	v := testValuator()

	// 2. şubede sadece TAV sayımı var
	total := v.Total("2508", 2)
	assert.True(t, dec(777*120).Equal(total), "total: %s", total)
}
