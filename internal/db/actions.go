package db

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/meta-auditor/internal/common"
	dbpkg "github.com/dtnitsch/meta-auditor/pkg/db"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// TypesAction lists the public content types and marks the stored selection.
func TypesAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	types, err := env.DB.PublicPostTypes(c.Context)
	if err != nil {
		return err
	}
	selected, err := env.Reports.StoredPostTypes(c.Context)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Selected", "Name", "Label"})
	for _, pt := range types {
		mark := ""
		for _, s := range selected {
			if s == pt.Name {
				mark = "✓"
			}
		}
		t.AppendRow(table.Row{mark, pt.Name, pt.Label})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()

	fmt.Printf("\nStored selection: %s\n", strings.Join(selected, ", "))
	return nil
}

// TypesSetAction overwrites the stored selection with the comma separated
// argument.
func TypesSetAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: meta-auditor types set <type,type,...>")
	}
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	types := common.SplitList(c.Args().First())
	if err := env.Reports.SavePostTypes(c.Context, types); err != nil {
		return err
	}
	env.Logger.Info("stored post type selection", zap.Strings("post_types", types))
	return nil
}

// SeedAction loads post types and records from a YAML file.
func SeedAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: meta-auditor seed <file.yaml>")
	}
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	seed, err := LoadSeed(c.Args().First())
	if err != nil {
		return err
	}
	n, err := seed.Apply(c.Context, env.DB)
	if err != nil {
		return err
	}
	env.Logger.Info("seeded content store",
		zap.Int("post_types", len(seed.PostTypes)),
		zap.Int("posts", n),
	)
	return nil
}

// PluginsAction shows the importer's install state.
func PluginsAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	plugin, err := env.DB.GetPlugin(c.Context, c.String("file"))
	if errors.Is(err, dbpkg.ErrPluginNotFound) {
		fmt.Printf("%s is not installed\n", c.String("file"))
		return nil
	}
	if err != nil {
		return err
	}

	state := "inactive"
	if plugin.Active {
		state = "active"
	}
	fmt.Printf("%s %s (%s), installed %s\n",
		plugin.Name, plugin.Version, state, plugin.InstalledAt.Format("2006-01-02 15:04:05"))
	return nil
}
