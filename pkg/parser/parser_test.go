package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSEO(t *testing.T) {
	html := `<html><head>
		<title>
			Garden Tools
		</title>
		<meta property="og:title" content="Best Garden Tools">
		<meta name="description" content="Rakes, hoes &amp; more">
		<meta name="keywords" content=" garden tools , rakes,,hoes ">
	</head><body><p>hi</p></body></html>`

	p := &Parser{}
	page, err := p.ParseSEO("https://example.com/tools", html)
	if err != nil {
		t.Fatalf("ParseSEO() error = %v", err)
	}

	if page.Title != "Garden Tools" {
		t.Errorf("Title = %q", page.Title)
	}
	if page.MetaTitle != "Best Garden Tools" {
		t.Errorf("MetaTitle = %q", page.MetaTitle)
	}
	if page.Description != "Rakes, hoes & more" {
		t.Errorf("Description = %q", page.Description)
	}
	if diff := cmp.Diff([]string{"garden tools", "rakes", "hoes"}, page.Keywords); diff != "" {
		t.Errorf("Keywords mismatch (-want +got):\n%s", diff)
	}
	if page.Text != "hi" {
		t.Errorf("Text = %q", page.Text)
	}
	if page.FocusKeyword() != "garden tools" {
		t.Errorf("FocusKeyword() = %q", page.FocusKeyword())
	}
}

func TestParseSEO_MissingTags(t *testing.T) {
	p := &Parser{}
	page, err := p.ParseSEO("https://example.com/", `<html><head><title>Only title</title></head><body></body></html>`)
	if err != nil {
		t.Fatalf("ParseSEO() error = %v", err)
	}
	if page.MetaTitle != "Only title" {
		t.Errorf("MetaTitle should fall back to <title>, got %q", page.MetaTitle)
	}
	if page.Description != "" || page.Keywords != nil || page.FocusKeyword() != "" {
		t.Errorf("expected empty description and keywords, got %+v", page)
	}
}

func TestParseSEO_ReadabilityTitle(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Garden Guide">
	</head><body><article>
		<h1>Garden Guide</h1>
		<p>Spring is the time to prepare beds, turn compost and plan what goes where.
		Start with the soil, then pick plants that suit the light your garden gets.</p>
		<p>Water early in the morning and mulch generously to keep moisture in the ground.</p>
	</article></body></html>`

	p := &Parser{}
	page, err := p.ParseSEO("https://example.com/guide", html)
	if err != nil {
		t.Fatalf("ParseSEO() error = %v", err)
	}
	if page.Title != "Garden Guide" {
		t.Errorf("Title = %q, want readability title %q", page.Title, "Garden Guide")
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("  a \n\n  b  \n"); got != "a b" {
		t.Errorf("normalizeText() = %q, want %q", got, "a b")
	}
}
