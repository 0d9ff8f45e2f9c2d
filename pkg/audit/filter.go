package audit

import (
	"github.com/dtnitsch/meta-auditor/models"
	"golang.org/x/text/cases"
)

// Filter returns the records that pass every active toggle and the search
// clause, in input order.
func Filter(records []models.Record, q models.Query) []models.Record {
	fold := cases.Fold()
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if matches(fold, r, q) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record passes the query's filters.
func Matches(r models.Record, q models.Query) bool {
	return matches(cases.Fold(), r, q)
}

func matches(fold cases.Caser, r models.Record, q models.Query) bool {
	if q.MissingTitle && !IsMissingTitle(r) {
		return false
	}
	if q.MissingDesc && !IsMissingDesc(r) {
		return false
	}
	if q.MissingKW && !IsMissingKW(r) {
		return false
	}
	if q.Search == "" {
		return true
	}

	// The content title is matched raw; meta fields are matched cleaned.
	return containsFold(fold, r.Title, q.Search) ||
		containsFold(fold, Clean(r.MetaTitle), q.Search) ||
		containsFold(fold, Clean(r.MetaDesc), q.Search) ||
		containsFold(fold, Clean(r.FocusKW), q.Search)
}
