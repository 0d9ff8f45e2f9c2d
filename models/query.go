package models

// SortKey names a sortable record field. Values match the record JSON names.
type SortKey string

const (
	SortID        SortKey = "id"
	SortTitle     SortKey = "title"
	SortType      SortKey = "type"
	SortMetaTitle SortKey = "metaTitle"
	SortMetaDesc  SortKey = "metaDesc"
	SortFocusKW   SortKey = "focusKw"
	SortModified  SortKey = "modified"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultPerPage is used when per_page is missing or not one of PerPageChoices.
const DefaultPerPage = 25

// PerPageChoices are the page sizes offered in the filter form.
var PerPageChoices = []int{10, 25, 50, 100}

// Query is the validated filter, sort and pagination state of one request.
type Query struct {
	Search       string
	PostTypes    []string
	TypesGiven   bool // post_types was present in the request
	MissingTitle bool
	MissingDesc  bool
	MissingKW    bool
	Sort         SortKey
	Order        Direction
	PerPage      int
	Page         int
}
