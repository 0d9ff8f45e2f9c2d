// Package plugins installs the third-party importer plugin: directory
// lookup, package download and registry bookkeeping.
package plugins

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/nonce"
	"go.uber.org/zap"
)

// The importer the one-click installer offers.
const (
	ImporterSlug  = "wp-all-import"
	ImporterFile  = "wp-all-import/wp-all-import.php"
	InstallAction = "install_importer"
)

// ErrPermission is returned when the caller lacks the capability or a
// valid one-time token. Nothing has been changed when it is returned.
var ErrPermission = errors.New("permission denied")

// Installer runs the privileged install flow.
type Installer struct {
	directory Directory
	upgrader  Upgrader
	registry  Registry
	tokens    *nonce.Issuer
	logger    *zap.Logger
}

func NewInstaller(directory Directory, upgrader Upgrader, registry Registry, tokens *nonce.Issuer, logger *zap.Logger) *Installer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Installer{
		directory: directory,
		upgrader:  upgrader,
		registry:  registry,
		tokens:    tokens,
		logger:    logger,
	}
}

// ImporterActive reports whether the importer is installed and active.
func (i *Installer) ImporterActive(ctx context.Context) (bool, error) {
	return i.registry.IsPluginActive(ctx, ImporterFile)
}

// InstallToken issues the one-time token embedded in the install link.
func (i *Installer) InstallToken(user models.User) (string, error) {
	return i.tokens.Issue(user.Name, InstallAction)
}

// InstallImporter checks privilege and token, spends the token, then looks
// the importer up in the directory and installs it.
func (i *Installer) InstallImporter(ctx context.Context, user models.User, token string) (*models.Plugin, error) {
	if !user.Can(models.CapInstallPlugins) {
		i.logger.Warn("install denied: missing capability", zap.String("user", user.Name))
		return nil, ErrPermission
	}

	claims, err := i.tokens.Verify(token, user.Name, InstallAction)
	if err != nil {
		i.logger.Warn("install denied: bad token", zap.String("user", user.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPermission, err)
	}
	if err := i.tokens.Consume(ctx, claims); err != nil {
		if errors.Is(err, nonce.ErrUsed) {
			i.logger.Warn("install denied: token replayed", zap.String("user", user.Name))
			return nil, fmt.Errorf("%w: %w", ErrPermission, err)
		}
		return nil, fmt.Errorf("failed to spend token: %w", err)
	}

	info, err := i.directory.Lookup(ctx, ImporterSlug)
	if err != nil {
		return nil, err
	}
	plugin, err := i.upgrader.Install(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("failed to install %s: %w", ImporterSlug, err)
	}

	i.logger.Info("importer installed", zap.String("user", user.Name), zap.String("version", plugin.Version))
	return plugin, nil
}
