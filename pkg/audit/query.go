package audit

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/dtnitsch/meta-auditor/models"
)

// Query parameter names.
const (
	ParamSearch       = "search"
	ParamPostTypes    = "post_types"
	ParamMissingTitle = "missing_title"
	ParamMissingDesc  = "missing_desc"
	ParamMissingKW    = "missing_kw"
	ParamSort         = "sort"
	ParamOrder        = "order"
	ParamPerPage      = "per_page"
	ParamPage         = "paged"
)

// ParseQuery coerces request parameters into a Query. Nothing here fails:
// malformed values fall back to defaults. stored is the remembered type
// selection, used when the request carries none.
func ParseQuery(values url.Values, stored []string) models.Query {
	q := models.Query{
		Search:       SanitizeText(values.Get(ParamSearch)),
		MissingTitle: values.Get(ParamMissingTitle) != "",
		MissingDesc:  values.Get(ParamMissingDesc) != "",
		MissingKW:    values.Get(ParamMissingKW) != "",
		Sort:         models.SortID,
		Order:        models.Asc,
		PerPage:      models.DefaultPerPage,
		Page:         1,
	}

	raw, given := postTypeValues(values)
	if given {
		q.TypesGiven = true
		for _, t := range raw {
			if t = SanitizeText(t); t != "" {
				q.PostTypes = append(q.PostTypes, t)
			}
		}
	} else {
		q.PostTypes = slices.Clone(stored)
	}

	if s := SanitizeText(values.Get(ParamSort)); s != "" {
		q.Sort = models.SortKey(s)
	}
	if values.Get(ParamOrder) == string(models.Desc) {
		q.Order = models.Desc
	}
	if n, err := strconv.Atoi(values.Get(ParamPerPage)); err == nil && slices.Contains(models.PerPageChoices, n) {
		q.PerPage = n
	}
	if n, err := strconv.Atoi(values.Get(ParamPage)); err == nil && n > 1 {
		q.Page = n
	}
	return q
}

// postTypeValues accepts both "post_types" and the form-style "post_types[]".
func postTypeValues(values url.Values) ([]string, bool) {
	plain, okPlain := values[ParamPostTypes]
	bracket, okBracket := values[ParamPostTypes+"[]"]
	return append(slices.Clone(plain), bracket...), okPlain || okBracket
}

// BaseValues carries the filter state every link must preserve.
func BaseValues(q models.Query) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
	}
	v.Set(ParamPerPage, strconv.Itoa(q.PerPage))
	if q.MissingTitle {
		v.Set(ParamMissingTitle, "1")
	}
	if q.MissingDesc {
		v.Set(ParamMissingDesc, "1")
	}
	if q.MissingKW {
		v.Set(ParamMissingKW, "1")
	}
	for _, t := range q.PostTypes {
		v.Add(ParamPostTypes, t)
	}
	return v
}

// NextOrder is the direction a header link for key should request:
// re-clicking the ascending column flips it, anything else starts ascending.
func NextOrder(q models.Query, key models.SortKey) models.Direction {
	if q.Sort == key && q.Order == models.Asc {
		return models.Desc
	}
	return models.Asc
}

// SortValues builds the parameters of a column header link.
func SortValues(q models.Query, key models.SortKey) url.Values {
	v := BaseValues(q)
	v.Set(ParamSort, string(key))
	v.Set(ParamOrder, string(NextOrder(q, key)))
	return v
}

// ViewValues keeps the current sort too. Used by the export link.
func ViewValues(q models.Query) url.Values {
	v := BaseValues(q)
	v.Set(ParamSort, string(q.Sort))
	v.Set(ParamOrder, string(q.Order))
	return v
}

// PageValues builds the parameters of a pager link.
func PageValues(q models.Query, page int) url.Values {
	v := ViewValues(q)
	v.Set(ParamPage, strconv.Itoa(page))
	return v
}
