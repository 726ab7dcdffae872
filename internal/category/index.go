// Package category: iki seviyeli kategori hiyerarşisi (üst kategori →
// kategori) üzerinde salt okunur indeks ve görünürlük filtreleri.
package category

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mutabakat-backend/internal/models"
)

// Grouped bir üst kategori ve altındaki (sıralı) kategoriler.
type Grouped struct {
	Group      models.CategoryGroup
	Categories []models.Category
}

// Index bir kategori snapshot'ı üzerinde arama yapar. Yetki kontrolü yapmaz;
// gizli kategoriler için çağıranın önceden hesapladığı includeHidden
// boolean'ını alır.
//
// Collator eşzamanlı kullanım için güvenli değildir; Index istek başına
// kurulmalıdır.
type Index struct {
	byID      map[uint]models.Category
	groupByID map[uint]models.CategoryGroup
	groups    []models.CategoryGroup
	byGroup   map[uint][]models.Category
	ungrouped []models.Category
	coll      *collate.Collator
}

// NewIndex snapshot'tan indeks kurar. Kategori adları Türkçe collation ile
// (noktalı/noktasız I, Ç/Ş/Ğ/Ö/Ü dahil, büyük/küçük harf duyarsız) sıralanır;
// byte sırası kullanılmaz.
func NewIndex(groups []models.CategoryGroup, categories []models.Category) *Index {
	ix := &Index{
		byID:      make(map[uint]models.Category, len(categories)),
		groupByID: make(map[uint]models.CategoryGroup, len(groups)),
		groups:    groups,
		byGroup:   make(map[uint][]models.Category),
		coll:      collate.New(language.Turkish, collate.Loose),
	}
	for _, g := range groups {
		ix.groupByID[g.ID] = g
	}
	for _, c := range categories {
		ix.byID[c.ID] = c
		if c.GroupID != nil {
			if _, ok := ix.groupByID[*c.GroupID]; ok {
				ix.byGroup[*c.GroupID] = append(ix.byGroup[*c.GroupID], c)
				continue
			}
		}
		ix.ungrouped = append(ix.ungrouped, c)
	}
	return ix
}

func (ix *Index) ByID(id uint) (models.Category, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

func (ix *Index) GroupByID(id uint) (models.CategoryGroup, bool) {
	g, ok := ix.groupByID[id]
	return g, ok
}

// ActiveByType aktif kategorileri tipe göre filtreler ve Türkçe alfabetik
// sıralar. includeHidden false ise gizli kategoriler atlanır.
func (ix *Index) ActiveByType(t models.CategoryType, includeHidden bool) []models.Category {
	var out []models.Category
	for _, c := range ix.byID {
		if visible(c, t, includeHidden) {
			out = append(out, c)
		}
	}
	ix.sortByName(out)
	return out
}

// GroupedByParent aktif kategorileri aktif üst kategorilere göre bölümler.
// Üst kategoriler snapshot sırasında gelir; her grubun içi Türkçe alfabetik
// sıralıdır. Üst kategorisi olmayan kategoriler ungrouped olarak ayrıca döner
// ve hiyerarşik toplamların dışında raporlanır.
func (ix *Index) GroupedByParent(t models.CategoryType, includeHidden bool) (grouped []Grouped, ungrouped []models.Category) {
	for _, g := range ix.groups {
		if !g.Active {
			continue
		}
		var cats []models.Category
		for _, c := range ix.byGroup[g.ID] {
			if visible(c, t, includeHidden) {
				cats = append(cats, c)
			}
		}
		if len(cats) == 0 {
			continue
		}
		ix.sortByName(cats)
		grouped = append(grouped, Grouped{Group: g, Categories: cats})
	}
	for _, c := range ix.ungrouped {
		if visible(c, t, includeHidden) {
			ungrouped = append(ungrouped, c)
		}
	}
	ix.sortByName(ungrouped)
	return grouped, ungrouped
}

func visible(c models.Category, t models.CategoryType, includeHidden bool) bool {
	return c.Active && c.Type == t && (includeHidden || !c.Hidden)
}

func (ix *Index) sortByName(cats []models.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		return ix.coll.CompareString(cats[i].Name, cats[j].Name) < 0
	})
}
