package csvexport

import (
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/google/go-cmp/cmp"
)

func TestField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", `"hello"`},
		{"empty", "", `""`},
		{"quote and newline", "He said \"hi\"\nthere", `"He said ""hi"" there"`},
		{"crlf is one space", "a\r\nb", `"a b"`},
		{"lone cr", "a\rb", `"a b"`},
		{"entities decoded", "Fish &amp; Chips &quot;deluxe&quot;", `"Fish & Chips ""deluxe"""`},
		{"comma kept", "a, b", `"a, b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.in); got != tt.want {
				t.Errorf("Field(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	records := []models.Record{
		{ID: 7, Title: "He said \"hi\"\nthere", Type: "post", MetaTitle: "T", MetaDesc: "D &amp; E", FocusKW: "kw", Modified: "2024-01-02"},
		{ID: 8, Title: "Second", Type: "page", Modified: "2024-01-03"},
	}

	got := string(Encode(records))
	want := `"ID","Title","Type","Meta Title","Meta Description","Keyphrase","Modified"` + "\r\n" +
		`"7","He said ""hi"" there","post","T","D & E","kw","2024-01-02"` + "\r\n" +
		`"8","Second","page","","","","2024-01-03"`
	if got != want {
		t.Errorf("Encode() =\n%q\nwant\n%q", got, want)
	}
}

func TestEncode_EmptySet(t *testing.T) {
	got := string(Encode(nil))
	if strings.Contains(got, "\n") {
		t.Errorf("header-only export should be one line, got %q", got)
	}
}

func TestEncode_NoRawNewlinesInFields(t *testing.T) {
	records := []models.Record{
		{ID: 1, Title: "multi\nline\r\ntitle", MetaDesc: "desc\rwith\nbreaks"},
		{ID: 2, Title: "ok"},
	}
	out := string(Encode(records))
	lines := strings.Split(out, "\r\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), out)
	}
	for _, l := range lines {
		if strings.ContainsAny(l, "\r\n") {
			t.Errorf("line contains a raw break: %q", l)
		}
	}
}

func TestEncode_ReadableByCSVReader(t *testing.T) {
	records := []models.Record{
		{ID: 3, Title: `Quote "inside"`, Type: "page"},
		{ID: 9, Title: "line\nbreak", Type: "post"},
		{ID: 12, Title: "plain", Type: "post"},
	}

	rows, err := csv.NewReader(strings.NewReader(string(Encode(records)))).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if diff := cmp.Diff(Header, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	var gotIDs []int64
	for _, row := range rows[1:] {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			t.Fatalf("ParseInt(%q) error = %v", row[0], err)
		}
		gotIDs = append(gotIDs, id)
	}
	if diff := cmp.Diff([]int64{3, 9, 12}, gotIDs); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if rows[1][1] != `Quote "inside"` || rows[2][1] != "line break" {
		t.Errorf("titles = %q, %q", rows[1][1], rows[2][1])
	}
}
