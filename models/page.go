package models

import "strings"

// Page holds the SEO fields extracted from a crawled web page.
type Page struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	MetaTitle   string   `json:"meta_title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Text        string   `json:"-"` // visible body text
}

// FocusKeyword returns the first declared keyword, or "" when there is none.
func (p *Page) FocusKeyword() string {
	for _, kw := range p.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			return kw
		}
	}
	return ""
}
