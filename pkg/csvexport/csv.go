// Package csvexport serializes audit records into the download format:
// every field quoted, no raw line breaks inside fields, CRLF between rows.
package csvexport

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dtnitsch/meta-auditor/models"
	"golang.org/x/net/html"
)

// Filename is the name offered to the browser for the download.
const Filename = "yoast-meta-audit.csv"

// Header is the fixed column row.
var Header = []string{"ID", "Title", "Type", "Meta Title", "Meta Description", "Keyphrase", "Modified"}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Field quotes one value. Entities are decoded, each line break becomes a
// single space and inner quotes are doubled.
func Field(v string) string {
	v = html.UnescapeString(v)
	v = lineBreaks.Replace(v)
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Row returns the column values of a record in header order.
func Row(r models.Record) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Title,
		r.Type,
		r.MetaTitle,
		r.MetaDesc,
		r.FocusKW,
		r.Modified,
	}
}

// Write emits the header and one row per record. Rows are separated by
// CRLF; there is no trailing line break.
func Write(w io.Writer, records []models.Record) error {
	if err := writeRow(w, Header, false); err != nil {
		return err
	}
	for _, r := range records {
		if err := writeRow(w, Row(r), true); err != nil {
			return err
		}
	}
	return nil
}

// Encode is Write into a byte slice.
func Encode(records []models.Record) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, records) // bytes.Buffer writes do not fail
	return buf.Bytes()
}

func writeRow(w io.Writer, fields []string, leadingCRLF bool) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = Field(f)
	}
	line := strings.Join(quoted, ",")
	if leadingCRLF {
		line = "\r\n" + line
	}
	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}
