// Package stock: dönem sonu sayım miktarlarını çözümlenmiş birim fiyatlarla
// çarparak ürün grubu bazında stok değerlemesi üretir.
package stock

import (
	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/period"
	"mutabakat-backend/internal/pricing"
)

// FallbackGroup: ürün grubu atanmamış malzemelerin toplandığı grup etiketi.
const FallbackGroup = "Diğer"

// ItemValuation tek malzemenin dönem değerlemesi.
type ItemValuation struct {
	Item      models.StockItem
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Value     decimal.Decimal
}

// GroupValuation bir ürün grubunun satırları ve ara toplamı.
type GroupValuation struct {
	Group    string
	Items    []ItemValuation
	Subtotal decimal.Decimal
}

type countKey struct {
	itemCode string
	period   period.Period
	branchID uint
}

// Valuator aktif stok kartları ve sayım snapshot'ı üzerinde çalışır. Sayımlar
// yetkili anlık görüntülerdir: eksik sayım kaydı miktar 0 demektir, önceki
// dönemden tahmin yapılmaz.
type Valuator struct {
	resolver *pricing.Resolver
	items    []models.StockItem
	counts   map[countKey]decimal.Decimal
}

func NewValuator(resolver *pricing.Resolver, items []models.StockItem, counts []models.StockCount) *Valuator {
	v := &Valuator{
		resolver: resolver,
		counts:   make(map[countKey]decimal.Decimal, len(counts)),
	}
	for _, it := range items {
		if it.Active {
			v.items = append(v.items, it)
		}
	}
	for _, c := range counts {
		v.counts[countKey{itemCode: c.ItemCode, period: c.Period, branchID: c.BranchID}] = c.Quantity
	}
	return v
}

// Quantity malzemenin dönemdeki sayım miktarı; kayıt yoksa 0.
func (v *Valuator) Quantity(itemCode string, p period.Period, branchID uint) decimal.Decimal {
	return v.counts[countKey{itemCode: itemCode, period: p, branchID: branchID}]
}

// Valuation her aktif malzeme için miktar × dönem fiyatı hesaplar ve ürün
// grubuna göre bölümler. Gruplar kart sırasına göre, grupsuz malzemeler
// "Diğer" altında döner.
func (v *Valuator) Valuation(p period.Period, branchID uint) []GroupValuation {
	var order []string
	byGroup := make(map[string]*GroupValuation)

	for _, it := range v.items {
		group := it.ProductGroup
		if group == "" {
			group = FallbackGroup
		}

		qty := v.Quantity(it.Code, p, branchID)
		price := v.resolver.PriceAsOf(it.Code, p)
		val := qty.Mul(price)

		gv, ok := byGroup[group]
		if !ok {
			gv = &GroupValuation{Group: group}
			byGroup[group] = gv
			order = append(order, group)
		}
		gv.Items = append(gv.Items, ItemValuation{Item: it, Quantity: qty, UnitPrice: price, Value: val})
		gv.Subtotal = gv.Subtotal.Add(val)
	}

	out := make([]GroupValuation, 0, len(order))
	for _, g := range order {
		out = append(out, *byGroup[g])
	}
	return out
}

// Total dönemin toplam stok değeri.
func (v *Valuator) Total(p period.Period, branchID uint) decimal.Decimal {
	total := decimal.Zero
	for _, gv := range v.Valuation(p, branchID) {
		total = total.Add(gv.Subtotal)
	}
	return total
}

// Delta dönem değeri ile önceki dönem değeri arasındaki fark (stok değer
// farkı). Dönem kâr/zarar hesabına bu fark eklenir.
func (v *Valuator) Delta(p period.Period, branchID uint) decimal.Decimal {
	return v.Total(p, branchID).Sub(v.Total(p.Predecessor(), branchID))
}
