package fetch

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dtnitsch/meta-auditor/internal/common"
	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/analytics"
	"github.com/dtnitsch/meta-auditor/pkg/caching"
	"github.com/dtnitsch/meta-auditor/pkg/db"
	"github.com/dtnitsch/meta-auditor/pkg/fetcher"
	"github.com/dtnitsch/meta-auditor/pkg/parser"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Flags are the crawl command flags.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "urls", Aliases: []string{"u"}, Required: true, Usage: "comma separated page URLs"},
		&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Value: "page", Usage: "content type of the stored records"},
		&cli.StringFlag{Name: "status", Value: "publish", Usage: "publish, draft or pending"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: 4},
		&cli.DurationFlag{Name: "timeout", Value: common.Timeout},
		&cli.StringFlag{Name: "cache-dir", Usage: "reuse fetched HTML from this directory"},
		&cli.DurationFlag{Name: "max-age", Value: time.Hour, Usage: "cache entry lifetime"},
	}
}

// Summary is printed as YAML when the crawl finishes.
type Summary struct {
	Type      string              `yaml:"type"`
	Total     int                 `yaml:"total"`
	Succeeded int                 `yaml:"succeeded"`
	Failed    int                 `yaml:"failed"`
	Invalid   []string            `yaml:"invalid_urls,omitempty"`
	Keywords  []analytics.Keyword `yaml:"top_keywords,omitempty"`
	Results   []Result            `yaml:"results"`
}

const summaryKeywords = 10

// CrawlAction fetches pages and stores their SEO fields as records.
func CrawlAction(c *cli.Context) error {
	status := c.String("status")
	if !slices.Contains(db.AuditStatuses, status) {
		return fmt.Errorf("invalid status %q: want one of %v", status, db.AuditStatuses)
	}

	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	urls, invalid := common.SanitizeAndValidateURLs(common.SplitList(c.String("urls")))
	for _, u := range invalid {
		env.Logger.Warn("skipping invalid URL", zap.String("url", u))
	}
	if len(urls) == 0 {
		return fmt.Errorf("no valid URLs to crawl")
	}

	postType := c.String("type")
	if err := ensurePostType(c.Context, env.DB, postType); err != nil {
		return err
	}

	crawler := &Crawler{
		Fetcher:  fetcher.NewFetcher(c.Duration("timeout")),
		Parser:   &parser.Parser{},
		Store:    env.DB,
		PostType: postType,
		Status:   status,
		Workers:  c.Int("workers"),
		Logger:   env.Logger,
	}
	if dir := c.String("cache-dir"); dir != "" {
		cache, err := caching.NewCache(dir, c.Duration("max-age"))
		if err != nil {
			return err
		}
		crawler.Cache = cache
	}

	summary := Summarize(postType, crawler.Run(c.Context, urls))
	summary.Invalid = invalid

	out, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// Summarize counts successes and failures.
func Summarize(postType string, results []Result) Summary {
	s := Summary{Type: postType, Total: len(results), Results: results}
	var counts []map[string]int
	for _, r := range results {
		if r.Error == "" {
			s.Succeeded++
			counts = append(counts, r.Words)
		} else {
			s.Failed++
		}
	}
	s.Keywords = analytics.TopKeywords(analytics.Reduce(counts), summaryKeywords)
	return s
}

// ensurePostType registers an unknown type so its records show up in the
// report's type list.
func ensurePostType(ctx context.Context, database *db.DB, name string) error {
	types, err := database.PublicPostTypes(ctx)
	if err != nil {
		return err
	}
	for _, t := range types {
		if t.Name == name {
			return nil
		}
	}
	label := cases.Title(language.English).String(name)
	return database.RegisterPostType(ctx, models.PostType{Name: name, Label: label, Public: true})
}
