package audit

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/meta-auditor/models"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Clean decodes HTML entities. Meta fields are compared and displayed cleaned.
func Clean(s string) string {
	return html.UnescapeString(s)
}

// SanitizeText reduces free-form input to a single plain line: tags are
// stripped, whitespace runs collapse to one space, ends are trimmed.
func SanitizeText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// IsMissingTitle reports whether the cleaned meta title is empty or the placeholder.
func IsMissingTitle(r models.Record) bool {
	mt := Clean(r.MetaTitle)
	return mt == "" || mt == models.PlaceholderTitle
}

// IsMissingDesc reports whether the cleaned meta description is empty.
func IsMissingDesc(r models.Record) bool {
	return Clean(r.MetaDesc) == ""
}

// IsMissingKW reports whether the cleaned focus keyword is empty.
func IsMissingKW(r models.Record) bool {
	return Clean(r.FocusKW) == ""
}

// IsComplete reports whether all three SEO fields are set. Only used for
// highlighting; the stored values are checked as-is.
func IsComplete(r models.Record) bool {
	return r.MetaTitle != "" && r.MetaTitle != models.PlaceholderTitle &&
		r.MetaDesc != "" && r.FocusKW != ""
}

// containsFold is a case-insensitive substring match.
// A Caser keeps state, so callers pass their own.
func containsFold(c cases.Caser, haystack, needle string) bool {
	return strings.Contains(c.String(haystack), c.String(needle))
}
