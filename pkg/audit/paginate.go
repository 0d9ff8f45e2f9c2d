package audit

import "strconv"

// Pager sizing, matching the host's pagination control.
const (
	pagerEndSize = 1
	pagerMidSize = 2
)

// Pagination describes one page of a filtered result set.
type Pagination struct {
	Total   int // filtered record count
	PerPage int
	Page    int // 1-based, clamped to [1, Pages]
	Pages   int // at least 1
}

// Paginate computes the page count and clamps page into range.
func Paginate(total, perPage, page int) Pagination {
	if perPage < 1 {
		perPage = 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	return Pagination{Total: total, PerPage: perPage, Page: page, Pages: pages}
}

// Bounds returns the half-open index range of the current page.
func (p Pagination) Bounds() (start, end int) {
	start = (p.Page - 1) * p.PerPage
	end = min(start+p.PerPage, p.Total)
	if start > end {
		start = end
	}
	return start, end
}

// Slice returns the items on the current page.
func Slice[T any](items []T, p Pagination) []T {
	start, end := p.Bounds()
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		return nil
	}
	return items[start:end]
}

// PageItem is one entry of the pager control.
type PageItem struct {
	Label   string
	Page    int // target page; 0 for dots
	Current bool
	Dots    bool
}

// Items lays out the pager: previous, numbered pages with the ends and a
// window around the current page, dots for gaps, next. A single page has
// no pager.
func (p Pagination) Items() []PageItem {
	if p.Pages < 2 {
		return nil
	}

	var items []PageItem
	if p.Page > 1 {
		items = append(items, PageItem{Label: "«", Page: p.Page - 1})
	}

	dots := false
	for n := 1; n <= p.Pages; n++ {
		switch {
		case n == p.Page:
			items = append(items, PageItem{Label: strconv.Itoa(n), Page: n, Current: true})
			dots = true
		case n <= pagerEndSize ||
			(n >= p.Page-pagerMidSize && n <= p.Page+pagerMidSize) ||
			n > p.Pages-pagerEndSize:
			items = append(items, PageItem{Label: strconv.Itoa(n), Page: n})
			dots = true
		case dots:
			items = append(items, PageItem{Label: "…", Dots: true})
			dots = false
		}
	}

	if p.Page < p.Pages {
		items = append(items, PageItem{Label: "»", Page: p.Page + 1})
	}
	return items
}
