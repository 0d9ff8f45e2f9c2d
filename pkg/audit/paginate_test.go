package audit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                 string
		total, perPage, page int
		wantPage, wantPages  int
	}{
		{"empty set has one page", 0, 25, 1, 1, 1},
		{"exact fit", 50, 25, 2, 2, 2},
		{"remainder page", 51, 25, 3, 3, 3},
		{"page clamped high", 30, 10, 9, 3, 3},
		{"page clamped low", 30, 10, -4, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.perPage, tt.page)
			if p.Page != tt.wantPage || p.Pages != tt.wantPages {
				t.Errorf("Paginate(%d, %d, %d) = page %d of %d, want %d of %d",
					tt.total, tt.perPage, tt.page, p.Page, p.Pages, tt.wantPage, tt.wantPages)
			}
		})
	}
}

func TestSlice_PagesConcatenate(t *testing.T) {
	items := make([]int, 47)
	for i := range items {
		items[i] = i
	}

	for _, per := range []int{10, 25, 50, 100} {
		first := Paginate(len(items), per, 1)
		wantPages := (len(items) + per - 1) / per
		if first.Pages != wantPages {
			t.Errorf("per %d: Pages = %d, want %d", per, first.Pages, wantPages)
		}

		var all []int
		for page := 1; page <= first.Pages; page++ {
			all = append(all, Slice(items, Paginate(len(items), per, page))...)
		}
		if diff := cmp.Diff(items, all); diff != "" {
			t.Errorf("per %d: concatenated pages mismatch (-want +got):\n%s", per, diff)
		}
	}
}

func TestItems(t *testing.T) {
	if items := Paginate(5, 10, 1).Items(); items != nil {
		t.Errorf("single page should have no pager, got %v", items)
	}

	labels := func(items []PageItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Label
			if it.Current {
				out[i] = "[" + it.Label + "]"
			}
		}
		return out
	}

	tests := []struct {
		page int
		want []string
	}{
		{1, []string{"[1]", "2", "3", "…", "10", "»"}},
		{5, []string{"«", "1", "…", "3", "4", "[5]", "6", "7", "…", "10", "»"}},
		{10, []string{"«", "1", "…", "8", "9", "[10]"}},
	}
	for _, tt := range tests {
		got := labels(Paginate(100, 10, tt.page).Items())
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Items() page %d mismatch (-want +got):\n%s", tt.page, diff)
		}
	}
}
