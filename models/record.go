package models

// PlaceholderTitle is the default value the SEO plugin stores when a meta
// title was never set. It counts as empty.
const PlaceholderTitle = "%%sitename%%"

// Postmeta keys the SEO plugin writes for each record.
const (
	MetaKeyTitle   = "_yoast_wpseo_title"
	MetaKeyDesc    = "_yoast_wpseo_metadesc"
	MetaKeyFocusKW = "_yoast_wpseo_focuskw"
)

// Record is one content item joined with its SEO metadata.
type Record struct {
	ID        int64  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Type      string `json:"type" yaml:"type"`
	MetaTitle string `json:"metaTitle" yaml:"meta_title"`
	MetaDesc  string `json:"metaDesc" yaml:"meta_desc"`
	FocusKW   string `json:"focusKw" yaml:"focus_kw"`
	Modified  string `json:"modified" yaml:"modified"` // 2006-01-02
}

// PostType is a content type registered with the content store.
type PostType struct {
	Name   string `json:"name" yaml:"name"`
	Label  string `json:"label" yaml:"label"`
	Public bool   `json:"public" yaml:"public"`
}
