package audit

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dtnitsch/meta-auditor/models"
	"golang.org/x/text/cases"
)

// sortFields maps each sortable key to the string form it is compared by.
// IDs are compared by value instead; see Sort.
var sortFields = map[models.SortKey]func(models.Record) string{
	models.SortID:        func(r models.Record) string { return "" },
	models.SortTitle:     func(r models.Record) string { return r.Title },
	models.SortType:      func(r models.Record) string { return r.Type },
	models.SortMetaTitle: func(r models.Record) string { return r.MetaTitle },
	models.SortMetaDesc:  func(r models.Record) string { return r.MetaDesc },
	models.SortFocusKW:   func(r models.Record) string { return r.FocusKW },
	models.SortModified:  func(r models.Record) string { return r.Modified },
}

// IsValidSortKey checks if a key names a sortable column.
func IsValidSortKey(key models.SortKey) bool {
	_, ok := sortFields[key]
	return ok
}

// Sort orders records in place by key. Unknown keys leave the order alone.
// The sort is stable, so equal keys keep their fetch order. IDs compare
// numerically so that 9 sorts before 10; every other key compares its
// case-folded string.
func Sort(records []models.Record, key models.SortKey, order models.Direction) {
	field, ok := sortFields[key]
	if !ok {
		return
	}

	fold := cases.Fold()
	keyed := make([]sortItem, len(records))
	for i, r := range records {
		keyed[i] = sortItem{key: fold.String(field(r)), rec: r}
	}

	compare := func(a, b sortItem) int { return strings.Compare(a.key, b.key) }
	if key == models.SortID {
		compare = func(a, b sortItem) int { return cmp.Compare(a.rec.ID, b.rec.ID) }
	}

	slices.SortStableFunc(keyed, func(a, b sortItem) int {
		c := compare(a, b)
		if order == models.Desc {
			return -c
		}
		return c
	})

	for i := range keyed {
		records[i] = keyed[i].rec
	}
}

type sortItem struct {
	key string
	rec models.Record
}
