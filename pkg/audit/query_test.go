package audit

import (
	"net/url"
	"testing"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/google/go-cmp/cmp"
)

func TestParseQuery_Defaults(t *testing.T) {
	q := ParseQuery(url.Values{}, []string{"page"})
	want := models.Query{
		PostTypes: []string{"page"},
		Sort:      models.SortID,
		Order:     models.Asc,
		PerPage:   25,
		Page:      1,
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("ParseQuery() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuery_Coercion(t *testing.T) {
	values := url.Values{
		"search":        {"  <em>seo</em>  tips "},
		"post_types[]":  {"post", " product ", ""},
		"missing_title": {"on"},
		"missing_kw":    {"1"},
		"sort":          {"title"},
		"order":         {"DESC"},
		"per_page":      {"37"},
		"paged":         {"abc"},
	}
	q := ParseQuery(values, []string{"page"})
	want := models.Query{
		Search:       "seo tips",
		PostTypes:    []string{"post", "product"},
		TypesGiven:   true,
		MissingTitle: true,
		MissingKW:    true,
		Sort:         models.SortTitle,
		Order:        models.Asc,
		PerPage:      25,
		Page:         1,
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("ParseQuery() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuery_ValidValues(t *testing.T) {
	values := url.Values{
		"post_types": {"post"},
		"order":      {"desc"},
		"per_page":   {"100"},
		"paged":      {"4"},
		"sort":       {"bogus"},
	}
	q := ParseQuery(values, nil)
	if q.Order != models.Desc || q.PerPage != 100 || q.Page != 4 {
		t.Errorf("ParseQuery() = order %s per %d page %d, want desc 100 4", q.Order, q.PerPage, q.Page)
	}
	if q.Sort != "bogus" {
		t.Errorf("unknown sort key should pass through, got %q", q.Sort)
	}
}

func TestSortValues_TogglesDirection(t *testing.T) {
	q := models.Query{Sort: models.SortTitle, Order: models.Asc, PerPage: 25, PostTypes: []string{"page", "post"}, MissingDesc: true}

	if got := SortValues(q, models.SortTitle).Get("order"); got != "desc" {
		t.Errorf("same column asc -> order %q, want desc", got)
	}
	if got := SortValues(q, models.SortID).Get("order"); got != "asc" {
		t.Errorf("other column -> order %q, want asc", got)
	}

	q.Order = models.Desc
	v := SortValues(q, models.SortTitle)
	if got := v.Get("order"); got != "asc" {
		t.Errorf("same column desc -> order %q, want asc", got)
	}
	if diff := cmp.Diff([]string{"page", "post"}, v["post_types"]); diff != "" {
		t.Errorf("post_types not preserved (-want +got):\n%s", diff)
	}
	if v.Get("missing_desc") != "1" || v.Get("per_page") != "25" {
		t.Errorf("filters not preserved: %v", v)
	}
}

func TestPageValues(t *testing.T) {
	q := models.Query{Search: "kw", Sort: models.SortModified, Order: models.Desc, PerPage: 10, PostTypes: []string{"post"}}
	v := PageValues(q, 3)
	want := url.Values{
		"search":     {"kw"},
		"per_page":   {"10"},
		"post_types": {"post"},
		"sort":       {"modified"},
		"order":      {"desc"},
		"paged":      {"3"},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("PageValues() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuery_RoundTrip(t *testing.T) {
	q := models.Query{
		Search:      "coffee",
		PostTypes:   []string{"post"},
		TypesGiven:  true,
		MissingDesc: true,
		Sort:        models.SortTitle,
		Order:       models.Desc,
		PerPage:     50,
		Page:        2,
	}
	got := ParseQuery(PageValues(q, 2), []string{"page"})
	if diff := cmp.Diff(q, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
