package report

import (
	"io"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/audit"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const maxCellWidth = 48

// RenderRecords writes records as a table. Complete rows are marked with
// a check in the first column.
func RenderRecords(w io.Writer, records []models.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"", "ID", "Title", "Type", "Meta Title", "Meta Description", "Keyphrase", "Modified"})
	for _, r := range records {
		mark := ""
		if audit.IsComplete(r) {
			mark = "✓"
		}
		t.AppendRow(table.Row{
			mark, r.ID, r.Title, r.Type,
			audit.Clean(r.MetaTitle), audit.Clean(r.MetaDesc), audit.Clean(r.FocusKW),
			r.Modified,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, WidthMax: maxCellWidth},
		{Number: 5, WidthMax: maxCellWidth},
		{Number: 6, WidthMax: maxCellWidth},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}
