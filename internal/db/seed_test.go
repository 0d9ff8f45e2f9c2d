package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/meta-auditor/models"
	dbpkg "github.com/dtnitsch/meta-auditor/pkg/db"
	"github.com/google/go-cmp/cmp"
)

const seedYAML = `
post_types:
  - name: product
    label: Products
posts:
  - title: Home
    type: page
    modified: 2024-01-02T10:00:00Z
    meta_title: Home
    meta_desc: Welcome home
    focus_kw: home
  - title: Widget
    type: product
    status: draft
    url: https://shop.example/widget
    modified: 2024-02-03T00:00:00Z
  - title: Widget v2
    type: product
    status: draft
    url: https://shop.example/widget
    modified: 2024-02-04T00:00:00Z
    meta_desc: Better widget
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestSeed_Apply(t *testing.T) {
	database, err := dbpkg.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	ctx := context.Background()

	seed, err := LoadSeed(writeSeed(t, seedYAML))
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	n, err := seed.Apply(ctx, database)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Apply() = %d, want 3", n)
	}

	types, err := database.PublicPostTypes(ctx)
	if err != nil {
		t.Fatalf("PublicPostTypes() error = %v", err)
	}
	found := false
	for _, pt := range types {
		if pt.Name == "product" && pt.Label == "Products" {
			found = true
		}
	}
	if !found {
		t.Errorf("product type not registered: %+v", types)
	}

	records, err := database.FetchRecords(ctx, []string{"page", "product"})
	if err != nil {
		t.Fatalf("FetchRecords() error = %v", err)
	}
	for i := range records {
		records[i].ID = 0
	}
	want := []models.Record{
		{Title: "Home", Type: "page", MetaTitle: "Home", MetaDesc: "Welcome home", FocusKW: "home", Modified: "2024-01-02"},
		{Title: "Widget v2", Type: "product", MetaDesc: "Better widget", Modified: "2024-02-04"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestSeed_RequiresType(t *testing.T) {
	database, err := dbpkg.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	seed := &Seed{Posts: []SeedPost{{Title: "Orphan"}}}
	if _, err := seed.Apply(context.Background(), database); err == nil {
		t.Error("Apply() expected error for a post without a type")
	}
}

func TestLoadSeed_Invalid(t *testing.T) {
	if _, err := LoadSeed(writeSeed(t, "posts: [")); err == nil {
		t.Error("LoadSeed() expected parse error")
	}
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSeed() expected read error")
	}
}
