package plugins

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/fetcher"
	"go.uber.org/zap"
)

// Registry tracks installed plugins.
type Registry interface {
	IsPluginActive(ctx context.Context, file string) (bool, error)
	RegisterPlugin(ctx context.Context, p models.Plugin) error
}

// Upgrader installs a plugin package.
type Upgrader interface {
	Install(ctx context.Context, info *models.PluginInfo) (*models.Plugin, error)
}

// MaxPackageBytes caps the total uncompressed size of a plugin package.
const MaxPackageBytes = 256 << 20

// ErrPackageTooLarge is returned when a package unpacks past the size cap.
var ErrPackageTooLarge = errors.New("plugin package too large")

// ZipUpgrader downloads a plugin zip, unpacks it into the plugins directory
// and registers the plugin as active. A package is unpacked into a staging
// directory first and only moved into place once it is complete.
type ZipUpgrader struct {
	dir      string
	fetcher  *fetcher.Fetcher
	registry Registry
	logger   *zap.Logger
	maxBytes int64
}

func NewZipUpgrader(dir string, f *fetcher.Fetcher, registry Registry, logger *zap.Logger) *ZipUpgrader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZipUpgrader{dir: dir, fetcher: f, registry: registry, logger: logger, maxBytes: MaxPackageBytes}
}

func (u *ZipUpgrader) Install(ctx context.Context, info *models.PluginInfo) (*models.Plugin, error) {
	tmp, err := os.CreateTemp("", "plugin-*.zip")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := u.fetcher.Download(ctx, info.DownloadLink, tmp)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(tmp, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open plugin package: %w", err)
	}

	if err := os.MkdirAll(u.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create plugins dir: %w", err)
	}
	// Staging lives inside the plugins dir so the final move is a rename.
	staging, err := os.MkdirTemp(u.dir, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	files, err := extract(zr, staging, u.maxBytes)
	if err != nil {
		return nil, err
	}

	mainFile := findMainFile(info.Slug, files)
	if mainFile == "" {
		return nil, fmt.Errorf("plugin package %s has no main file", info.Slug)
	}

	if err := promote(staging, u.dir); err != nil {
		return nil, err
	}

	plugin := models.Plugin{
		File:        mainFile,
		Slug:        info.Slug,
		Name:        info.Name,
		Version:     info.Version,
		Active:      true,
		InstalledAt: time.Now(),
	}
	if err := u.registry.RegisterPlugin(ctx, plugin); err != nil {
		return nil, err
	}

	u.logger.Info("installed plugin",
		zap.String("slug", info.Slug),
		zap.String("version", info.Version),
		zap.String("file", mainFile),
		zap.Int("files", len(files)),
	)
	return &plugin, nil
}

// promote moves each top-level entry of staging into dir, replacing an
// existing install of the same name.
func promote(staging, dir string) error {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return fmt.Errorf("failed to read staging dir: %w", err)
	}
	for _, e := range entries {
		target := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to replace %s: %w", e.Name(), err)
		}
		if err := os.Rename(filepath.Join(staging, e.Name()), target); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", e.Name(), err)
		}
	}
	return nil
}

// extract unpacks every entry below dir and returns the slash-separated
// names of the regular files written. Entries escaping dir are rejected,
// and so is a package whose contents exceed limit bytes.
func extract(zr *zip.Reader, dir string, limit int64) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plugins dir: %w", err)
	}

	var files []string
	remaining := limit
	for _, f := range zr.File {
		name := path.Clean(f.Name)
		target := filepath.Join(root, filepath.FromSlash(name))
		if !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return nil, fmt.Errorf("illegal path in plugin package: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, fmt.Errorf("failed to create %s: %w", name, err)
			}
			continue
		}
		n, err := extractFile(f, target, remaining)
		if err != nil {
			return nil, err
		}
		remaining -= n
		files = append(files, name)
	}
	return files, nil
}

// extractFile writes one entry, reading at most limit bytes. The declared
// size is not trusted; the copy itself is bounded.
func extractFile(f *zip.File, target string, limit int64) (int64, error) {
	if f.UncompressedSize64 > uint64(max(limit, 0)) {
		return 0, fmt.Errorf("%w: %s", ErrPackageTooLarge, f.Name)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", f.Name, err)
	}
	n, err := io.Copy(out, io.LimitReader(rc, limit+1))
	if err != nil {
		out.Close()
		return n, fmt.Errorf("failed to write %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return n, err
	}
	if n > limit {
		return n, fmt.Errorf("%w: %s", ErrPackageTooLarge, f.Name)
	}
	return n, nil
}

// findMainFile picks "<slug>/<slug>.php", else the first PHP file directly
// inside the slug directory.
func findMainFile(slug string, files []string) string {
	preferred := slug + "/" + slug + ".php"
	fallback := ""
	for _, f := range files {
		if f == preferred {
			return f
		}
		if fallback == "" && path.Dir(f) == slug && path.Ext(f) == ".php" {
			fallback = f
		}
	}
	return fallback
}
