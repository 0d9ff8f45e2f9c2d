package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dtnitsch/meta-auditor/models"
	"go.uber.org/zap"
)

// OptionPostTypes is the settings key of the remembered type selection.
const OptionPostTypes = "yoast_meta_auditor_post_types"

// DefaultPostTypes is the selection used before anything was saved.
var DefaultPostTypes = []string{"page"}

// RecordSource fetches published, draft and pending records of the given types.
type RecordSource interface {
	FetchRecords(ctx context.Context, types []string) ([]models.Record, error)
}

// TypeLister lists the content types an operator can pick from.
type TypeLister interface {
	PublicPostTypes(ctx context.Context) ([]models.PostType, error)
}

// SettingsStore reads and writes named options.
type SettingsStore interface {
	GetOption(ctx context.Context, name string) (string, bool, error)
	SetOption(ctx context.Context, name, value string) error
}

// Report is the outcome of one fetch, filter, sort and paginate pass.
type Report struct {
	Query      models.Query
	Records    []models.Record // filtered and sorted, all pages
	Pagination Pagination
}

// Page returns the records shown on the current page.
func (r *Report) Page() []models.Record {
	return Slice(r.Records, r.Pagination)
}

// Service builds reports from a record source and remembers the operator's
// type selection in a settings store.
type Service struct {
	records  RecordSource
	settings SettingsStore
	logger   *zap.Logger
}

// NewService creates a report service.
func NewService(records RecordSource, settings SettingsStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{records: records, settings: settings, logger: logger}
}

// StoredPostTypes returns the remembered type selection.
func (s *Service) StoredPostTypes(ctx context.Context) ([]string, error) {
	raw, ok, err := s.settings.GetOption(ctx, OptionPostTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to read post type selection: %w", err)
	}
	if !ok {
		return DefaultPostTypes, nil
	}

	var types []string
	if err := json.Unmarshal([]byte(raw), &types); err != nil {
		s.logger.Warn("ignoring malformed post type selection", zap.String("value", raw), zap.Error(err))
		return DefaultPostTypes, nil
	}
	return types, nil
}

// SavePostTypes overwrites the remembered type selection.
func (s *Service) SavePostTypes(ctx context.Context, types []string) error {
	if types == nil {
		types = []string{}
	}
	data, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("failed to encode post type selection: %w", err)
	}
	if err := s.settings.SetOption(ctx, OptionPostTypes, string(data)); err != nil {
		return fmt.Errorf("failed to save post type selection: %w", err)
	}
	return nil
}

// Resolve parses request parameters, falling back to the stored selection.
func (s *Service) Resolve(ctx context.Context, values url.Values) (models.Query, error) {
	stored, err := s.StoredPostTypes(ctx)
	if err != nil {
		return models.Query{}, err
	}
	return ParseQuery(values, stored), nil
}

// Remember persists the query's type selection when the request supplied one.
func (s *Service) Remember(ctx context.Context, q models.Query) error {
	if !q.TypesGiven {
		return nil
	}
	return s.SavePostTypes(ctx, q.PostTypes)
}

// Build fetches every record of the selected types and applies the query.
// Records are re-read on every call.
func (s *Service) Build(ctx context.Context, q models.Query) (*Report, error) {
	records, err := s.records.FetchRecords(ctx, q.PostTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	filtered := Filter(records, q)
	Sort(filtered, q.Sort, q.Order)
	p := Paginate(len(filtered), q.PerPage, q.Page)
	q.Page = p.Page

	s.logger.Debug("built report",
		zap.Strings("post_types", q.PostTypes),
		zap.Int("fetched", len(records)),
		zap.Int("matched", len(filtered)),
		zap.Int("page", p.Page),
		zap.Int("pages", p.Pages),
	)

	return &Report{Query: q, Records: filtered, Pagination: p}, nil
}
