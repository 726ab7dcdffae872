// Package period: "YYMM" dönem anahtarı aritmetiği.
//
// Dönemler 4 haneli, sıfır dolgulu stringlerdir (örn. "2508" = Ağustos 2025).
// Sabit genişlik sayesinde sıralama lexicographic string karşılaştırmasıyla
// yapılır; sayısal parse ile değiştirilmemeli, mevcut sıralama davranışı buna
// bağlı.
package period

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// ErrInvalidPeriodKey: bozuk dönem anahtarı (yanlış uzunluk, rakam olmayan
// karakter, ay aralık dışı). Çağıran taraf sessizce düzeltmemeli.
var ErrInvalidPeriodKey = errors.New("geçersiz dönem anahtarı")

// Dönem kapanış politikası: bir önceki dönem, ayın ilk editDayLimit günü
// boyunca yazılabilir kalır.
const editDayLimit = 5

// Period bir takvim ayını "YYMM" olarak kodlar (2000+YY).
type Period string

// Parse dönem anahtarını doğrular. 4 hane, hepsi rakam, ay 01-12 olmalı.
func Parse(s string) (Period, error) {
	if len(s) != 4 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodKey, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidPeriodKey, s)
		}
	}
	month := int(s[2]-'0')*10 + int(s[3]-'0')
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodKey, s)
	}
	return Period(s), nil
}

// FromDate tarihin ait olduğu dönemi üretir.
func FromDate(t time.Time) Period {
	return format(t.Year(), int(t.Month()))
}

func format(year, month int) Period {
	return Period(fmt.Sprintf("%02d%02d", year%100, month))
}

// Year dönem yılını döner (2000 + YY).
func (p Period) Year() int {
	return 2000 + int(p[0]-'0')*10 + int(p[1]-'0')
}

// Month dönem ayını döner (1-12).
func (p Period) Month() int {
	return int(p[2]-'0')*10 + int(p[3]-'0')
}

// Successor bir sonraki dönemi döner; ay 12'den 01'e taşarken yıl artar.
func (p Period) Successor() Period {
	year, month := p.Year(), p.Month()
	month++
	if month == 13 {
		month = 1
		year++
	}
	return format(year, month)
}

// Predecessor bir önceki dönemi döner; ay 01'den 12'ye inerken yıl azalır.
func (p Period) Predecessor() Period {
	year, month := p.Year(), p.Month()
	month--
	if month == 0 {
		month = 12
		year--
	}
	return format(year, month)
}

// Days dönem ayındaki takvim günü sayısı (artık yıllar dahil).
func (p Period) Days() int {
	return p.LastDay().Day()
}

// FirstDay dönemin ilk gününü UTC olarak döner.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year(), time.Month(p.Month()), 1, 0, 0, 0, 0, time.UTC)
}

// LastDay dönemin son gününü UTC olarak döner.
func (p Period) LastDay() time.Time {
	return time.Date(p.Year(), time.Month(p.Month())+1, 0, 0, 0, 0, 0, time.UTC)
}

// Contains tarih bu dönemin içinde mi (gün bazında, saat dikkate alınmaz).
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year() && int(t.Month()) == p.Month()
}

// Range start'tan end'e (ikisi de dahil) dönemleri üreten tembel, yeniden
// başlatılabilir bir sequence döner. start > end ise boş.
func Range(start, end Period) iter.Seq[Period] {
	return func(yield func(Period) bool) {
		if start > end {
			return
		}
		for p := start; ; p = p.Successor() {
			if !yield(p) {
				return
			}
			if p == end {
				return
			}
		}
	}
}

// IsEditable dönem kapanış politikası: hedef dönem her zaman yazılabilir olan
// mevcut döneme eşitse true; hemen önceki dönem sadece ayın ilk 5 günü
// yazılabilir; diğer tüm dönemler salt okunur.
func IsEditable(target, current Period, today time.Time) bool {
	if target == current {
		return true
	}
	if target == current.Predecessor() {
		return today.Day() <= editDayLimit
	}
	return false
}
