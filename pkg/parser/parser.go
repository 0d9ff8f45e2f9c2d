package parser

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/meta-auditor/models"
	"github.com/go-shiori/go-readability"
)

type Parser struct{}

// ParseSEO reads the title and SEO meta tags of an HTML document. When the
// document has no <title>, the go-readability article title is used.
func (p *Parser) ParseSEO(rawURL, html string) (*models.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &models.Page{
		URL:         rawURL,
		Title:       normalizeText(doc.Find("head title").First().Text()),
		MetaTitle:   metaContent(doc, `meta[property="og:title"]`),
		Description: metaContent(doc, `meta[name="description"]`),
		Keywords:    splitKeywords(metaContent(doc, `meta[name="keywords"]`)),
	}

	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	page.Text = normalizeText(body.Text())

	if page.Title == "" {
		page.Title = readabilityTitle(rawURL, html)
	}
	if page.MetaTitle == "" {
		page.MetaTitle = page.Title
	}
	return page, nil
}

// readabilityTitle lets go-readability guess a title from the content.
// Errors just mean there is no better title.
func readabilityTitle(rawURL, html string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	rp := readability.NewParser()
	article, err := rp.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return ""
	}
	return normalizeText(article.Title)
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return normalizeText(content)
}

func splitKeywords(raw string) []string {
	var out []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			// Write the line and a single space for separation
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	// Return the result, trimming the final space
	return strings.TrimSpace(b.String())
}
