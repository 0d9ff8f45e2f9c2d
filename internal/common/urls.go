package common

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	urlPattern          = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?(/[^\s]*)?$`)
)

// SanitizeURL cleans up common copy-paste damage: surrounding whitespace,
// markdown link syntax and stray punctuation at either end.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}
	cleaned = strings.TrimRight(cleaned, `,.)}]"'>;`)
	cleaned = strings.TrimLeft(cleaned, `([<"'`)

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs returns the sanitized http(s) URLs and the raw
// inputs that could not be made valid.
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalid []string

	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)
		if !validURL(cleaned) {
			invalid = append(invalid, rawURL)
			continue
		}
		sanitized = append(sanitized, cleaned)
	}
	return sanitized, invalid
}

func validURL(s string) bool {
	if s == "" || strings.Contains(s, " ") || !urlPattern.MatchString(s) {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != "" && !strings.ContainsAny(parsed.Host, "{}[]<>\"'")
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
