package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/analytics"
	"github.com/dtnitsch/meta-auditor/pkg/caching"
	"github.com/dtnitsch/meta-auditor/pkg/db"
	"github.com/dtnitsch/meta-auditor/pkg/fetcher"
	"github.com/dtnitsch/meta-auditor/pkg/parser"
	"go.uber.org/zap"
)

// Job is one URL for a worker to fetch and parse.
type Job struct {
	URL string
}

// Result is the outcome of a processed job.
type Result struct {
	URL       string         `yaml:"url"`
	ID        int64          `yaml:"id,omitempty"`
	Title     string         `yaml:"title,omitempty"`
	Cached    bool           `yaml:"cached,omitempty"`
	Suggested string         `yaml:"suggested,omitempty"`
	Error     string         `yaml:"error,omitempty"`
	ErrorType string         `yaml:"error_type,omitempty"`
	Page      *models.Page   `yaml:"-"`
	Words     map[string]int `yaml:"-"`
}

// PostWriter stores crawled records.
type PostWriter interface {
	UpsertPostByURL(ctx context.Context, p db.Post) (int64, error)
}

// Crawler fetches pages concurrently and stores their SEO fields as records
// of one content type. Writes happen on the calling goroutine.
type Crawler struct {
	Fetcher  *fetcher.Fetcher
	Cache    *caching.Cache // optional
	Parser   *parser.Parser
	Store    PostWriter
	PostType string
	Status   string
	Workers  int
	Logger   *zap.Logger
	now      func() time.Time
}

// Run crawls urls and returns one result per URL in completion order.
func (cr *Crawler) Run(ctx context.Context, urls []string) []Result {
	logger := cr.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cr.now
	if now == nil {
		now = time.Now
	}
	workers := max(cr.Workers, 1)

	logger.Info("starting crawl", zap.Int("url_count", len(urls)), zap.Int("workers", workers))
	var wg sync.WaitGroup
	jobs := make(chan Job, len(urls))
	results := make(chan Result, len(urls))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go cr.worker(ctx, w, logger, &wg, jobs, results)
	}
	for _, u := range urls {
		jobs <- Job{URL: u}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []Result
	for result := range results {
		if result.Error == "" {
			cr.store(ctx, logger, &result, now())
		}
		out = append(out, result)
	}
	return out
}

func (cr *Crawler) store(ctx context.Context, logger *zap.Logger, result *Result, modified time.Time) {
	page := result.Page
	id, err := cr.Store.UpsertPostByURL(ctx, db.Post{
		Title:     page.Title,
		Type:      cr.PostType,
		Status:    cr.Status,
		URL:       page.URL,
		Modified:  modified,
		MetaTitle: page.MetaTitle,
		MetaDesc:  page.Description,
		FocusKW:   page.FocusKeyword(),
	})
	if err != nil {
		logger.Error("failed to store page", zap.String("url", result.URL), zap.Error(err))
		result.Error = err.Error()
		result.ErrorType = "store_error"
		return
	}
	result.ID = id
}

// worker processes jobs until the channel closes.
func (cr *Crawler) worker(ctx context.Context, id int, logger *zap.Logger, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug("worker started job", zap.Int("worker", id), zap.String("url", job.URL))
		result := Result{URL: job.URL}

		html, cached, err := cr.fetch(ctx, job.URL)
		if err != nil {
			logger.Warn("fetch failed", zap.String("url", job.URL), zap.Error(err))
			result.Error = err.Error()
			result.ErrorType = "fetch_error"
			results <- result
			continue
		}
		result.Cached = cached

		page, err := cr.Parser.ParseSEO(job.URL, string(html))
		if err != nil {
			logger.Warn("parse failed", zap.String("url", job.URL), zap.Error(err))
			result.Error = err.Error()
			result.ErrorType = "parse_error"
			results <- result
			continue
		}

		result.Page = page
		result.Title = page.Title
		result.Words = analytics.WordFrequency(page.Title + " " + page.Text)
		if page.FocusKeyword() == "" {
			result.Suggested = analytics.SuggestKeyphrase(page.Title, page.Text)
		}
		results <- result
		logger.Debug("worker finished job", zap.Int("worker", id), zap.String("url", job.URL))
	}
}

func (cr *Crawler) fetch(ctx context.Context, url string) ([]byte, bool, error) {
	get := func() ([]byte, error) { return cr.Fetcher.GetBytes(ctx, url) }
	if cr.Cache == nil {
		data, err := get()
		return data, false, err
	}
	return cr.Cache.GetOrFetch(url, get)
}
