package voucher

import (
	"strings"

	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/models"
)

// faturalanmış sayılmak için tutar farkı toleransı
var amountTolerance = decimal.NewFromFloat(0.01)

// ReferenceMatcher: mevcut davranışla birebir aynı sezgisel eşleştirme. Bir
// çek, tutarı nominal tutara 0.01 içinde eşit, belge tarihi çekin son gününe
// tam denk gelen ve alıcı ünvanı çekin kategorisine bağlı karşı taraf
// adlarından birini içeren bir giden fatura varsa "kesildi" sayılır.
// Eşleştirme kırılgandır ama davranış eşitliği hedeflendiği için aynen
// korunur; daha sıkı kurallar InvoiceMatcher'ın başka bir implementasyonuna
// yazılmalıdır.
type ReferenceMatcher struct {
	outgoing        []models.Invoice
	namesByCategory map[uint][]string
}

// NewReferenceMatcher yalnızca giden faturaları ve karşı taraf referans
// tablosunu indeksler.
func NewReferenceMatcher(invoices []models.Invoice, refs []models.InvoiceReference) *ReferenceMatcher {
	m := &ReferenceMatcher{namesByCategory: make(map[uint][]string)}
	for _, inv := range invoices {
		if inv.Outgoing {
			m.outgoing = append(m.outgoing, inv)
		}
	}
	for _, ref := range refs {
		m.namesByCategory[ref.CategoryID] = append(m.namesByCategory[ref.CategoryID], ref.CounterpartyName)
	}
	return m
}

func (m *ReferenceMatcher) Match(v models.Voucher) (models.Invoice, bool) {
	names := m.namesByCategory[v.CategoryID]
	if len(names) == 0 {
		return models.Invoice{}, false
	}
	lastDay := dateOnly(v.LastDate)

	for _, inv := range m.outgoing {
		if !dateOnly(inv.DocumentDate).Equal(lastDay) {
			continue
		}
		if inv.Amount.Sub(v.FaceAmount).Abs().GreaterThan(amountTolerance) {
			continue
		}
		buyer := strings.ToLower(inv.BuyerName)
		for _, name := range names {
			if strings.Contains(buyer, strings.ToLower(name)) {
				return inv, true
			}
		}
	}
	return models.Invoice{}, false
}
