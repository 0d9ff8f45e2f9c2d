package server

import (
	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/audit"
)

// columns are the table headers in display order.
var columns = []struct {
	Key   models.SortKey
	Label string
}{
	{models.SortID, "ID"},
	{models.SortTitle, "Title"},
	{models.SortType, "Type"},
	{models.SortMetaTitle, "Meta Title"},
	{models.SortMetaDesc, "Meta Description"},
	{models.SortFocusKW, "Keyphrase"},
	{models.SortModified, "Modified"},
}

type reportView struct {
	Search        string
	MissingTitle  bool
	MissingDesc   bool
	MissingKW     bool
	PerPage       []perPageOption
	Types         []typeOption
	Headers       []headerView
	Rows          []rowView
	Pager         []pagerLink
	Total         int
	ExportHref    string
	Records       []models.Record // embedded as JSON
	Importer      importerView
	JustInstalled bool
}

type perPageOption struct {
	Value    int
	Selected bool
}

type typeOption struct {
	Name    string
	Label   string
	Checked bool
}

type headerView struct {
	Label string
	Href  string
	Arrow string
}

type rowView struct {
	ID        int64
	Title     string
	Type      string
	MetaTitle string
	MetaDesc  string
	FocusKW   string
	Modified  string
	Good      bool
}

type pagerLink struct {
	Label   string
	Href    string
	Current bool
	Dots    bool
}

type importerView struct {
	Active        bool
	InstallHref   string
	NewImportHref string
}

func newReportView(base string, report *audit.Report, types []models.PostType, importer importerView) reportView {
	q := report.Query
	view := reportView{
		Search:       q.Search,
		MissingTitle: q.MissingTitle,
		MissingDesc:  q.MissingDesc,
		MissingKW:    q.MissingKW,
		Total:        report.Pagination.Total,
		ExportHref:   base + "export.csv?" + audit.ViewValues(q).Encode(),
		Records:      report.Records,
		Importer:     importer,
	}
	if view.Records == nil {
		view.Records = []models.Record{}
	}

	for _, n := range models.PerPageChoices {
		view.PerPage = append(view.PerPage, perPageOption{Value: n, Selected: n == q.PerPage})
	}

	selected := make(map[string]bool, len(q.PostTypes))
	for _, t := range q.PostTypes {
		selected[t] = true
	}
	for _, pt := range types {
		view.Types = append(view.Types, typeOption{Name: pt.Name, Label: pt.Label, Checked: selected[pt.Name]})
	}

	for _, col := range columns {
		h := headerView{
			Label: col.Label,
			Href:  base + "?" + audit.SortValues(q, col.Key).Encode(),
		}
		if q.Sort == col.Key {
			h.Arrow = " ▲"
			if q.Order == models.Desc {
				h.Arrow = " ▼"
			}
		}
		view.Headers = append(view.Headers, h)
	}

	// Meta fields are shown decoded; the template escapes them again.
	for _, r := range report.Page() {
		view.Rows = append(view.Rows, rowView{
			ID:        r.ID,
			Title:     r.Title,
			Type:      r.Type,
			MetaTitle: audit.Clean(r.MetaTitle),
			MetaDesc:  audit.Clean(r.MetaDesc),
			FocusKW:   audit.Clean(r.FocusKW),
			Modified:  r.Modified,
			Good:      audit.IsComplete(r),
		})
	}

	for _, item := range report.Pagination.Items() {
		link := pagerLink{Label: item.Label, Current: item.Current, Dots: item.Dots}
		if !item.Dots && !item.Current {
			link.Href = base + "?" + audit.PageValues(q, item.Page).Encode()
		}
		view.Pager = append(view.Pager, link)
	}
	return view
}
