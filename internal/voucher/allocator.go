// Package voucher: birden fazla döneme yayılan yemek çeklerinin nominal
// tutarını hedef döneme paylaştırır ve çekin faturalanıp faturalanmadığını
// işaretler.
package voucher

import (
	"time"

	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/period"
)

// Allocation tek çekin hedef dönem sonucu.
//
// Portion = FaceAmount − PriorRecognized − LaterRecognized. Çekin nominal
// tutarı, kendi penceresi dışındaki günlerde zaten olağan gelir olarak
// kaydedilmiş tutarları da kapsar; pay hesabı bu mükerrerliği düşer.
type Allocation struct {
	Voucher          models.Voucher
	PriorRecognized  decimal.Decimal // dönem başından önceki pencere içi gelir
	LaterRecognized  decimal.Decimal // dönem sonundan sonraki pencere içi gelir
	Portion          decimal.Decimal
	Invoiced         bool
	InvoiceDate      *time.Time
}

// InvoiceMatcher bir çekin kesilmiş giden faturayla eşleşip eşleşmediğine
// karar verir. Mevcut sezgisel eşleştirme kasten bu arayüzün arkasında:
// paylaştırma matematiğine dokunmadan daha sıkı bir eşleştirici takılabilir.
type InvoiceMatcher interface {
	Match(v models.Voucher) (models.Invoice, bool)
}

// Allocator tek şubenin gelir snapshot'ı üzerinde çalışır.
type Allocator struct {
	branchID         uint
	incomeByCategory map[uint][]models.DailyIncome
	matcher          InvoiceMatcher
}

// NewAllocator gelirleri kategoriye göre indeksler. matcher nil olabilir;
// o zaman hiçbir çek faturalanmış sayılmaz.
func NewAllocator(branchID uint, incomes []models.DailyIncome, matcher InvoiceMatcher) *Allocator {
	a := &Allocator{
		branchID:         branchID,
		incomeByCategory: make(map[uint][]models.DailyIncome),
		matcher:          matcher,
	}
	for _, gi := range incomes {
		if gi.BranchID != branchID {
			continue
		}
		a.incomeByCategory[gi.CategoryID] = append(a.incomeByCategory[gi.CategoryID], gi)
	}
	return a
}

// PeriodPortion çekin hedef döneme düşen payını hesaplar.
//
// Çek penceresi [Ilk, Son], dönem sınırları [dönemBaşı, dönemSonu] olmak
// üzere: önceki dönemlerde tanınan = pencere içi ve dönem başından önceki
// gelirler; sonraki dönemlerde tanınan = pencere içi ve dönem sonundan
// sonraki gelirler. Pay, nominal tutardan ikisinin düşülmesidir.
func (a *Allocator) PeriodPortion(v models.Voucher, target period.Period) Allocation {
	periodStart := target.FirstDay()
	periodEnd := target.LastDay()

	alloc := Allocation{
		Voucher:         v,
		PriorRecognized: decimal.Zero,
		LaterRecognized: decimal.Zero,
	}

	for _, gi := range a.incomeByCategory[v.CategoryID] {
		d := dateOnly(gi.Date)
		if d.Before(dateOnly(v.FirstDate)) || d.After(dateOnly(v.LastDate)) {
			continue // pencere dışı
		}
		switch {
		case d.Before(periodStart):
			alloc.PriorRecognized = alloc.PriorRecognized.Add(gi.Amount)
		case d.After(periodEnd):
			alloc.LaterRecognized = alloc.LaterRecognized.Add(gi.Amount)
		}
	}

	alloc.Portion = v.FaceAmount.Sub(alloc.PriorRecognized).Sub(alloc.LaterRecognized)

	if a.matcher != nil {
		if inv, ok := a.matcher.Match(v); ok {
			alloc.Invoiced = true
			d := inv.DocumentDate
			alloc.InvoiceDate = &d
		}
	}
	return alloc
}

// Overlaps çekin geçerlilik penceresi hedef dönemle kesişiyor mu; dönem
// raporuna girecek çekler bununla seçilir.
func Overlaps(v models.Voucher, target period.Period) bool {
	return !dateOnly(v.FirstDate).After(target.LastDay()) && !dateOnly(v.LastDate).Before(target.FirstDay())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
