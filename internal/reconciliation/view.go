// Package reconciliation: dönem bazlı mutabakat raporlarının bileşimi.
// Sunum katmanının kullandığı cephe: dönem arama, kategori hiyerarşisi,
// geriye dönük toplama, stok değerlemesi ve yemek çeki paylaştırmasını tek
// rapor halinde birleştirir.
package reconciliation

import (
	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/category"
	"mutabakat-backend/internal/ledger"
	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/period"
	"mutabakat-backend/internal/pricing"
	"mutabakat-backend/internal/stock"
	"mutabakat-backend/internal/voucher"
)

type RowKind string

const (
	RowTitle      RowKind = "title"       // bölüm başlığı (GELİRLER / GİDERLER)
	RowGroup      RowKind = "group"       // üst kategori, kendi toplamıyla
	RowCategory   RowKind = "category"    // yaprak kategori satırı
	RowGrandTotal RowKind = "grand_total" // TOPLAM satırı
)

// Row raporun tek satırı. FromPreviousPeriod işaretli satırlar UI'da
// "(Önceki Dönem Verisi)" vurgusuyla gösterilir. Percentage, gelir genel
// toplamına oranıdır; başlıklar ve sıfır değerli satırlar için nil kalır
// (satır yine de render edilir).
type Row struct {
	Label              string
	Value              decimal.Decimal
	Kind               RowKind
	Hidden             bool
	FromPreviousPeriod bool
	PeriodUsed         period.Period
	Percentage         *decimal.Decimal
}

// Report (şube, dönem) için hesaplanmış tam mutabakat görünümü.
type Report struct {
	BranchID uint
	Period   period.Period

	Income  []Row
	Expense []Row

	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal

	StockValue         decimal.Decimal
	PreviousStockValue decimal.Decimal
	StockDelta         decimal.Decimal

	// Cirodan kalan = gelir − gider; dönem kâr/zararı = cirodan kalan + stok
	// değer farkı.
	NetFromRevenue decimal.Decimal
	PeriodProfit   decimal.Decimal

	// veri kalitesi bayrakları: toplamlar eksik veride de hesaplanır,
	// boşluklar sayaç olarak görünür kalır
	UnassignedCount int
	UnresolvedCount int
}

// View tek snapshot üzerine kurulmuş, salt okunur rapor motoru. İstek başına
// kurulur; snapshot değişince yenisi yapılır.
type View struct {
	branchID uint
	idx      *category.Index
	agg      *ledger.Aggregator
	valuator *stock.Valuator
	alloc    *voucher.Allocator
	vouchers []models.Voucher
}

// NewView snapshot'tan tüm alt motorları kurar.
func NewView(branchID uint, snap Snapshot) *View {
	idx := category.NewIndex(snap.Groups, snap.Categories)
	agg := ledger.NewAggregator(branchID, idx, ledger.Sources{
		Invoices:       snap.Invoices,
		StatementLines: snap.StatementLines,
		ManualExpenses: snap.ManualExpenses,
		DailyIncomes:   snap.DailyIncomes,
	})
	resolver := pricing.NewResolver(snap.StockPrices)
	valuator := stock.NewValuator(resolver, snap.StockItems, snap.StockCounts)
	matcher := voucher.NewReferenceMatcher(snap.Invoices, snap.InvoiceRefs)
	alloc := voucher.NewAllocator(branchID, snap.DailyIncomes, matcher)

	return &View{
		branchID: branchID,
		idx:      idx,
		agg:      agg,
		valuator: valuator,
		alloc:    alloc,
		vouchers: snap.Vouchers,
	}
}

// Report hedef dönem için sıralı gelir/gider satırlarını, stok bloğunu ve
// özet değerleri üretir. includeHidden, gizli kategori yetkisinin önceden
// hesaplanmış halidir; View yetki kontrolü yapmaz.
func (v *View) Report(target period.Period, includeHidden bool) (Report, error) {
	rep := Report{BranchID: v.branchID, Period: target}

	var err error
	rep.Income, rep.TotalIncome, err = v.section(models.CategoryIncome, "GELİRLER", "TOPLAM GELİR", target, includeHidden)
	if err != nil {
		return rep, err
	}
	rep.Expense, rep.TotalExpense, err = v.section(models.CategoryExpense, "GİDERLER", "TOPLAM GİDER", target, includeHidden)
	if err != nil {
		return rep, err
	}

	rep.StockValue = v.valuator.Total(target, v.branchID)
	rep.PreviousStockValue = v.valuator.Total(target.Predecessor(), v.branchID)
	rep.StockDelta = rep.StockValue.Sub(rep.PreviousStockValue)

	rep.NetFromRevenue = rep.TotalIncome.Sub(rep.TotalExpense)
	rep.PeriodProfit = rep.NetFromRevenue.Add(rep.StockDelta)

	rep.UnassignedCount = v.agg.UnassignedCount()
	rep.UnresolvedCount = v.agg.UnresolvedCount()

	applyPercentages(rep.Income, rep.TotalIncome)
	applyPercentages(rep.Expense, rep.TotalIncome)

	return rep, nil
}

// section bir kategori tipinin satırlarını sırayla dizer: bölüm başlığı, her
// üst kategori için toplamı taşıyan grup satırı ve altındaki kategori
// satırları, en sonda genel toplam. Geriye dönük arama yaprak kategori başına
// bağımsız değerlendirilir; grup toplamı çocukların sonuçlarının toplamıdır.
// Üst kategorisiz kategoriler grup toplamlarının dışında, kendi bölümünde
// listelenir ama genel toplama dahildir.
func (v *View) section(t models.CategoryType, title, totalLabel string, target period.Period, includeHidden bool) ([]Row, decimal.Decimal, error) {
	rows := []Row{{Label: title, Kind: RowTitle, PeriodUsed: target}}
	total := decimal.Zero

	grouped, ungrouped := v.idx.GroupedByParent(t, includeHidden)

	for _, g := range grouped {
		groupTotal := decimal.Zero
		children := make([]Row, 0, len(g.Categories))

		for _, c := range g.Categories {
			tot, err := v.agg.TotalForCategoryPeriod(c.ID, target, ledger.DefaultLookback)
			if err != nil {
				return nil, decimal.Zero, err
			}
			label := c.Name
			if c.Hidden {
				label += " (Gizli)"
			}
			children = append(children, Row{
				Label:              label,
				Value:              tot.Value,
				Kind:               RowCategory,
				Hidden:             c.Hidden,
				FromPreviousPeriod: tot.FromPreviousPeriod,
				PeriodUsed:         tot.PeriodUsed,
			})
			groupTotal = groupTotal.Add(tot.Value)
		}

		rows = append(rows, Row{Label: g.Group.Name, Value: groupTotal, Kind: RowGroup, PeriodUsed: target})
		rows = append(rows, children...)
		total = total.Add(groupTotal)
	}

	if len(ungrouped) > 0 {
		ungroupedTotal := decimal.Zero
		children := make([]Row, 0, len(ungrouped))
		for _, c := range ungrouped {
			tot, err := v.agg.TotalForCategoryPeriod(c.ID, target, ledger.DefaultLookback)
			if err != nil {
				return nil, decimal.Zero, err
			}
			children = append(children, Row{
				Label:              c.Name,
				Value:              tot.Value,
				Kind:               RowCategory,
				Hidden:             c.Hidden,
				FromPreviousPeriod: tot.FromPreviousPeriod,
				PeriodUsed:         tot.PeriodUsed,
			})
			ungroupedTotal = ungroupedTotal.Add(tot.Value)
		}
		rows = append(rows, Row{Label: "Gruplandırılmamış", Value: ungroupedTotal, Kind: RowGroup, PeriodUsed: target})
		rows = append(rows, children...)
		total = total.Add(ungroupedTotal)
	}

	rows = append(rows, Row{Label: totalLabel, Value: total, Kind: RowGrandTotal, PeriodUsed: target})
	return rows, total, nil
}

// VoucherGroup tek yemek çeki kategorisinin kontrol bloğu. Fark pozitifse
// dönem payları aylık gelirden fazladır (eksik gelir girişi şüphesi),
// negatifse çeki henüz girilmemiş gelir vardır.
type VoucherGroup struct {
	Category      models.Category
	MonthlyIncome decimal.Decimal
	Allocations   []voucher.Allocation
	PeriodTotal   decimal.Decimal
	Difference    decimal.Decimal
}

// VoucherSummary yemek çeki kontrol raporu.
type VoucherSummary struct {
	Period             period.Period
	Groups             []VoucherGroup
	TotalMonthlyIncome decimal.Decimal
	TotalPeriod        decimal.Decimal
	TotalDifference    decimal.Decimal
	VoucherCount       int
}

// VoucherReport hedef dönemle kesişen çekleri kategori bazında paylaştırır
// ve dönem paylarını aynı kategorinin aylık geliriyle karşılaştırır.
// Kategoriler, ilgili çeklerin görülme sırasıyla dizilir.
func (v *View) VoucherReport(target period.Period) VoucherSummary {
	sum := VoucherSummary{Period: target}

	byCategory := make(map[uint]*VoucherGroup)
	var order []uint

	for _, vc := range v.vouchers {
		if vc.BranchID != v.branchID || !voucher.Overlaps(vc, target) {
			continue
		}
		g, ok := byCategory[vc.CategoryID]
		if !ok {
			cat, _ := v.idx.ByID(vc.CategoryID)
			g = &VoucherGroup{
				Category:      cat,
				MonthlyIncome: v.agg.IncomeInPeriod(vc.CategoryID, target),
			}
			byCategory[vc.CategoryID] = g
			order = append(order, vc.CategoryID)
		}
		alloc := v.alloc.PeriodPortion(vc, target)
		g.Allocations = append(g.Allocations, alloc)
		g.PeriodTotal = g.PeriodTotal.Add(alloc.Portion)
		sum.VoucherCount++
	}

	for _, id := range order {
		g := byCategory[id]
		g.Difference = g.PeriodTotal.Sub(g.MonthlyIncome)
		sum.Groups = append(sum.Groups, *g)
		sum.TotalMonthlyIncome = sum.TotalMonthlyIncome.Add(g.MonthlyIncome)
		sum.TotalPeriod = sum.TotalPeriod.Add(g.PeriodTotal)
	}
	sum.TotalDifference = sum.TotalPeriod.Sub(sum.TotalMonthlyIncome)

	return sum
}

// StockValuation dönem stok değerleme dökümünü grup bazında verir.
func (v *View) StockValuation(target period.Period) []stock.GroupValuation {
	return v.valuator.Valuation(target, v.branchID)
}

// applyPercentages satır değerlerini gelir genel toplamına oranlar. Başlıklar
// ve sıfır değerli satırlar atlanır; gelir toplamı sıfırsa hiç oran yazılmaz.
func applyPercentages(rows []Row, totalIncome decimal.Decimal) {
	if totalIncome.IsZero() {
		return
	}
	hundred := decimal.NewFromInt(100)
	for i := range rows {
		if rows[i].Kind == RowTitle || rows[i].Value.IsZero() {
			continue
		}
		pct := rows[i].Value.Div(totalIncome).Mul(hundred)
		rows[i].Percentage = &pct
	}
}
