package report

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dtnitsch/meta-auditor/internal/common"
	"github.com/dtnitsch/meta-auditor/pkg/audit"
	"github.com/dtnitsch/meta-auditor/pkg/csvexport"
	"github.com/dtnitsch/meta-auditor/pkg/storage"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// ReportFlags add paging and persistence to the query flags.
func ReportFlags() []cli.Flag {
	return append(QueryFlags(),
		&cli.IntFlag{Name: "per-page", Value: 25, Usage: "10, 25, 50 or 100"},
		&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1},
		&cli.BoolFlag{Name: "save", Usage: "remember --type as the stored selection"},
	)
}

// ExportFlags add the output path to the query flags.
func ExportFlags() []cli.Flag {
	return append(QueryFlags(),
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to a file instead of stdout"},
	)
}

// ReportAction prints one page of the audit as a table.
func ReportAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()
	ctx := c.Context

	q, err := env.Reports.Resolve(ctx, QueryValues(c))
	if err != nil {
		return err
	}
	if c.Bool("save") {
		if err := env.Reports.Remember(ctx, q); err != nil {
			return err
		}
	}
	report, err := env.Reports.Build(ctx, q)
	if err != nil {
		return err
	}

	RenderTable(os.Stdout, report)
	return nil
}

// ExportAction writes the full filtered set as CSV.
func ExportAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	q, err := env.Reports.Resolve(c.Context, QueryValues(c))
	if err != nil {
		return err
	}
	report, err := env.Reports.Build(c.Context, q)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		return csvexport.Write(os.Stdout, report.Records)
	}

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, report.Records); err != nil {
		return err
	}
	s := &storage.Storage{}
	if err := s.SaveFile(out, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	stats, err := s.GetFileStats(out)
	if err != nil {
		return err
	}
	env.Logger.Info("export written",
		zap.String("path", out),
		zap.Int("records", len(report.Records)),
		zap.Int64("bytes", stats.SizeBytes),
	)
	return nil
}

// RenderTable writes the current page, a completeness marker per row and
// a page footer.
func RenderTable(w io.Writer, report *audit.Report) {
	RenderRecords(w, report.Page())
	p := report.Pagination
	fmt.Fprintf(w, "\nPage %d of %d, %d records\n", p.Page, p.Pages, p.Total)
}
