package plugins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/fetcher"
)

// ErrNotFound is returned when the directory has no plugin for a slug.
var ErrNotFound = errors.New("plugin not found")

// Directory looks plugins up by slug.
type Directory interface {
	Lookup(ctx context.Context, slug string) (*models.PluginInfo, error)
}

// HTTPDirectory queries a plugin_information JSON endpoint.
type HTTPDirectory struct {
	baseURL string
	fetcher *fetcher.Fetcher
}

func NewHTTPDirectory(baseURL string, f *fetcher.Fetcher) *HTTPDirectory {
	return &HTTPDirectory{baseURL: baseURL, fetcher: f}
}

type directoryResponse struct {
	models.PluginInfo
	Error string `json:"error"`
}

func (d *HTTPDirectory) Lookup(ctx context.Context, slug string) (*models.PluginInfo, error) {
	u, err := url.Parse(d.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid directory URL: %w", err)
	}
	q := u.Query()
	q.Set("action", "plugin_information")
	q.Set("request[slug]", slug)
	q.Set("request[fields][sections]", "0")
	u.RawQuery = q.Encode()

	body, err := d.fetcher.GetBytes(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin directory: %w", err)
	}

	var resp directoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode plugin information: %w", err)
	}
	if resp.Error != "" || resp.Slug == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	if resp.DownloadLink == "" {
		return nil, fmt.Errorf("plugin %s has no download link", slug)
	}
	return &resp.PluginInfo, nil
}
