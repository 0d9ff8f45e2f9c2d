package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/meta-auditor/internal/common"
	"github.com/dtnitsch/meta-auditor/internal/db"
	"github.com/dtnitsch/meta-auditor/internal/fetch"
	"github.com/dtnitsch/meta-auditor/internal/report"
	"github.com/dtnitsch/meta-auditor/internal/serve"
	"github.com/dtnitsch/meta-auditor/pkg/plugins"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "meta-auditor",
		Usage: "Audit SEO titles, descriptions and keyphrases across content records",
		Flags: common.GlobalFlags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the audit report web server",
				Flags:  serve.Flags(),
				Action: serve.ServeAction,
			},
			{
				Name:   "report",
				Usage:  "Print a page of the audit table",
				Flags:  report.ReportFlags(),
				Action: report.ReportAction,
			},
			{
				Name:   "export",
				Usage:  "Write the filtered audit as CSV",
				Flags:  report.ExportFlags(),
				Action: report.ExportAction,
			},
			{
				Name:   "types",
				Usage:  "Show content types and the stored selection",
				Action: db.TypesAction,
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Overwrite the stored selection",
						ArgsUsage: "<type,type,...>",
						Action:    db.TypesSetAction,
					},
				},
			},
			{
				Name:   "crawl",
				Usage:  "Import records from the SEO tags of live pages",
				Flags:  fetch.Flags(),
				Action: fetch.CrawlAction,
			},
			{
				Name:      "seed",
				Usage:     "Load post types and records from a YAML file",
				ArgsUsage: "<file.yaml>",
				Action:    db.SeedAction,
			},
			{
				Name:  "plugins",
				Usage: "Show the install state of a plugin",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Value: plugins.ImporterFile, Usage: "plugin main file"},
				},
				Action: db.PluginsAction,
			},
			{
				Name:   "token",
				Usage:  "Print a one-time importer install link for a user",
				Flags:  serve.TokenFlags(),
				Action: serve.TokenAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
