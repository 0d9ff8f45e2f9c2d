package audit

import (
	"github.com/dtnitsch/meta-auditor/models"
)

// sampleRecords covers every combination of missing fields plus entity
// encoded values and the placeholder title.
func sampleRecords() []models.Record {
	return []models.Record{
		{ID: 1, Title: "Home", Type: "page", MetaTitle: "Home &amp; Garden", MetaDesc: "Welcome", FocusKW: "garden", Modified: "2024-03-01"},
		{ID: 2, Title: "About", Type: "page", MetaTitle: "", MetaDesc: "About us", FocusKW: "team", Modified: "2024-01-15"},
		{ID: 3, Title: "Contact", Type: "page", MetaTitle: models.PlaceholderTitle, MetaDesc: "", FocusKW: "", Modified: "2023-12-31"},
		{ID: 4, Title: "Launch post", Type: "post", MetaTitle: "Launch", MetaDesc: "", FocusKW: "rocket", Modified: "2024-02-10"},
		{ID: 5, Title: "draft idea", Type: "post", MetaTitle: "Ideas", MetaDesc: "Raw &quot;ideas&quot;", FocusKW: "", Modified: "2024-02-11"},
		{ID: 6, Title: "Empty", Type: "post", MetaTitle: "", MetaDesc: "", FocusKW: "", Modified: "2022-06-01"},
		{ID: 10, Title: "Pricing", Type: "page", MetaTitle: "&#37;&#37;sitename&#37;&#37;", MetaDesc: "Plans", FocusKW: "price", Modified: "2024-05-05"},
		{ID: 11, Title: "CAFÉ menu", Type: "post", MetaTitle: "Café", MetaDesc: "Coffee &amp; cake", FocusKW: "coffee", Modified: "2024-04-04"},
	}
}

func ids(records []models.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
