// Package ledger: heterojen kaynak koleksiyonlarını (fatura, ekstre satırı,
// diğer harcama, günlük gelir) kategori+dönem bazında tek toplama indirger ve
// dönemde veri yoksa geriye dönük arama uygular.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"mutabakat-backend/internal/category"
	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/period"
)

// DefaultLookback: dönemde hiç kayıt yoksa en fazla kaç dönem geriye bakılır.
const DefaultLookback = 6

var ErrNegativeLookback = errors.New("lookback negatif olamaz")

// Sources motorun üzerinde çalıştığı, dışarıdan yüklenmiş, değişmez snapshot.
// Koleksiyonlardan biri değiştiğinde çağıran yeni bir Aggregator kurar;
// artımlı güncelleme yapılmaz.
type Sources struct {
	Invoices       []models.Invoice
	StatementLines []models.StatementLine
	ManualExpenses []models.ManualExpense
	DailyIncomes   []models.DailyIncome
}

// Total tek kategori+dönem sonucu. FromPreviousPeriod true ise değer geriye
// dönük aramayla önceki bir dönemden geldi; UI bu satırları işaretler.
type Total struct {
	Value              decimal.Decimal
	PeriodUsed         period.Period
	FromPreviousPeriod bool
}

type bucketKey struct {
	period     period.Period
	categoryID uint
}

// bucket toplamın yanında kayıt sayısını da tutar: "bu ay geliri sıfır" ile
// "hiç kayıt yok, önceki aya bak" ayrımı buradan yapılır.
type bucket struct {
	sum decimal.Decimal
	n   int
}

type memoKey struct {
	categoryID  uint
	target      period.Period
	maxLookback int
}

// Aggregator tek şubenin snapshot'ı üzerinde çalışır. Kurulurken tüm
// koleksiyonlar (dönem, kategori) anahtarıyla indekslenir; satır başına tam
// tarama yapılmaz. Memoization cache istek başına olduğundan kilitsizdir;
// Aggregator goroutine'ler arasında paylaşılmamalıdır.
type Aggregator struct {
	branchID uint
	idx      *category.Index

	income  map[bucketKey]bucket
	expense map[bucketKey]bucket
	payable map[bucketKey]bucket

	unassigned int // kategorisi atanmamış kayıt sayısı
	unresolved int // indekste olmayan kategoriye işaret eden kayıt sayısı

	memo map[memoKey]Total
}

// NewAggregator snapshot'ı indeksler. Kategorisi null olan kayıtlar hiçbir
// toplama girmez, "kategorilendirilmemiş" sayacında görünür. İndekste
// bulunmayan bir kategoriye işaret eden kayıtlar da dışlanır ve ayrı sayaçla
// raporlanır; hata fırlatılmaz.
func NewAggregator(branchID uint, idx *category.Index, src Sources) *Aggregator {
	a := &Aggregator{
		branchID: branchID,
		idx:      idx,
		income:   make(map[bucketKey]bucket),
		expense:  make(map[bucketKey]bucket),
		payable:  make(map[bucketKey]bucket),
		memo:     make(map[memoKey]Total),
	}

	for _, inv := range src.Invoices {
		if inv.BranchID != branchID || inv.Outgoing {
			continue // giden faturalar gider toplamlarına girmez
		}
		if inv.CategoryID == nil {
			a.unassigned++
			continue
		}
		if !a.resolvable(*inv.CategoryID) {
			continue
		}
		a.add(a.expense, inv.Period, *inv.CategoryID, inv.Amount)
	}

	for _, line := range src.StatementLines {
		if line.BranchID != branchID {
			continue
		}
		if line.CategoryID == nil {
			a.unassigned++
			continue
		}
		if !a.resolvable(*line.CategoryID) {
			continue
		}
		a.add(a.expense, line.Period, *line.CategoryID, line.Debit)
		a.add(a.payable, line.Period, *line.CategoryID, line.Credit)
	}

	for _, exp := range src.ManualExpenses {
		if exp.BranchID != branchID {
			continue
		}
		if !a.resolvable(exp.CategoryID) {
			continue
		}
		a.add(a.expense, exp.Period, exp.CategoryID, exp.Amount)
	}

	for _, gi := range src.DailyIncomes {
		if gi.BranchID != branchID {
			continue
		}
		if !a.resolvable(gi.CategoryID) {
			continue
		}
		a.add(a.income, period.FromDate(gi.Date), gi.CategoryID, gi.Amount)
	}

	return a
}

func (a *Aggregator) resolvable(categoryID uint) bool {
	if _, ok := a.idx.ByID(categoryID); !ok {
		a.unresolved++
		return false
	}
	return true
}

func (a *Aggregator) add(m map[bucketKey]bucket, p period.Period, categoryID uint, amount decimal.Decimal) {
	k := bucketKey{period: p, categoryID: categoryID}
	b := m[k]
	b.sum = b.sum.Add(amount)
	b.n++
	m[k] = b
}

// UnassignedCount: kategorisi atanmadığı için toplam dışı kalan kayıt sayısı.
// Mutabakat ekranları bu kuyruğu kullanıcıya gösterir.
func (a *Aggregator) UnassignedCount() int { return a.unassigned }

// UnresolvedCount: indekste karşılığı olmayan kategoriye işaret eden kayıt
// sayısı (veri kalitesi bayrağı).
func (a *Aggregator) UnresolvedCount() int { return a.unresolved }

// TotalForCategoryPeriod kategorinin hedef dönemdeki toplamını döner.
//
// Hedef dönemde kayıt varsa toplam olduğu gibi döner, sıfır olsa bile; bu
// bilinçli muhasebe politikasıdır ("bu ay gelir sıfır" kaydı, "kayıt yok"
// demek değildir). Hedef dönemde hiç kayıt yoksa en fazla maxLookback dönem
// geriye yürünür; yürüyüşte yalnızca gerçekten boş dönemler atlanır ve
// bulunan sonuç FromPreviousPeriod=true ile işaretlenir. Hiçbir dönemde kayıt
// yoksa hedef dönem 0 değerle döner.
func (a *Aggregator) TotalForCategoryPeriod(categoryID uint, target period.Period, maxLookback int) (Total, error) {
	if maxLookback < 0 {
		return Total{}, fmt.Errorf("%w: %d", ErrNegativeLookback, maxLookback)
	}

	mk := memoKey{categoryID: categoryID, target: target, maxLookback: maxLookback}
	if tot, ok := a.memo[mk]; ok {
		return tot, nil
	}

	cat, ok := a.idx.ByID(categoryID)
	if !ok {
		// bilinmeyen kategori: 0 döner, hesaplama asla patlamaz
		return Total{Value: decimal.Zero, PeriodUsed: target}, nil
	}

	m := a.bucketFor(cat.Type)

	p := target
	for i := 0; i <= maxLookback; i++ {
		b, has := m[bucketKey{period: p, categoryID: categoryID}]
		if has && b.n > 0 {
			tot := Total{Value: b.sum, PeriodUsed: p, FromPreviousPeriod: i > 0}
			a.memo[mk] = tot
			return tot, nil
		}
		p = p.Predecessor()
	}

	tot := Total{Value: decimal.Zero, PeriodUsed: target}
	a.memo[mk] = tot
	return tot, nil
}

func (a *Aggregator) bucketFor(t models.CategoryType) map[bucketKey]bucket {
	switch t {
	case models.CategoryIncome:
		return a.income
	case models.CategoryPayable:
		return a.payable
	default:
		return a.expense
	}
}

// IncomeInPeriod kategori için hedef dönemdeki ham gelir toplamı, geriye
// dönük arama olmadan. Yemek çeki kontrol raporu aylık geliri böyle okur.
func (a *Aggregator) IncomeInPeriod(categoryID uint, p period.Period) decimal.Decimal {
	return a.income[bucketKey{period: p, categoryID: categoryID}].sum
}

// UnassignedInvoices kategorisi atanmamış faturaları filtreler; üst akış
// ekranlarının "kategorilendirilmemiş" kuyruğu için.
func UnassignedInvoices(invoices []models.Invoice) []models.Invoice {
	var out []models.Invoice
	for _, inv := range invoices {
		if inv.CategoryID == nil {
			out = append(out, inv)
		}
	}
	return out
}

// UnassignedStatementLines kategorisi atanmamış ekstre satırlarını filtreler.
func UnassignedStatementLines(lines []models.StatementLine) []models.StatementLine {
	var out []models.StatementLine
	for _, line := range lines {
		if line.CategoryID == nil {
			out = append(out, line)
		}
	}
	return out
}
