// Package pricing: zaman aralıklı fiyat geçmişinden dönem bazlı birim fiyat
// çözümleme.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/period"
)

// Resolver aktif fiyat kayıtlarını malzeme koduna göre indeksler. Fiyat
// çözümleme şubeden bağımsızdır; kayıttaki şube alanı sahiplik bilgisidir.
type Resolver struct {
	byItem map[string][]models.StockPrice
}

// NewResolver snapshot'tan indeks kurar. Pasif kayıtlar çözümlemeye girmez.
func NewResolver(prices []models.StockPrice) *Resolver {
	r := &Resolver{byItem: make(map[string][]models.StockPrice)}
	for _, p := range prices {
		if !p.Active {
			continue
		}
		r.byItem[p.ItemCode] = append(r.byItem[p.ItemCode], p)
	}
	for code := range r.byItem {
		list := r.byItem[code]
		// geçerlilik başlangıcına, eşitlikte ID'ye göre artan: sondan tarama
		// en geç başlangıcı, eşitlikte en yüksek ID'yi bulur
		sort.SliceStable(list, func(i, j int) bool {
			if !list[i].ValidFrom.Equal(list[j].ValidFrom) {
				return list[i].ValidFrom.Before(list[j].ValidFrom)
			}
			return list[i].ID < list[j].ID
		})
		r.byItem[code] = list
	}
	return r
}

// PriceAsOf dönemin son günü itibarıyla geçerli birim fiyatı döner: geçerlilik
// başlangıcı o güne eşit veya önce olan en geç kayıt kazanır; aynı başlangıç
// tarihli kayıtlarda en yüksek ID (en son girilen) seçilir. Hiç kayıt yoksa 0
// döner; fiyatsız malzeme hata değil, sıfır değerle değerlenir.
func (r *Resolver) PriceAsOf(itemCode string, p period.Period) decimal.Decimal {
	cutoff := p.LastDay()
	list := r.byItem[itemCode]
	for i := len(list) - 1; i >= 0; i-- {
		if !list[i].ValidFrom.After(cutoff) {
			return list[i].Price
		}
	}
	return decimal.Zero
}
