package common

import (
	"github.com/dtnitsch/meta-auditor/pkg/fetcher"
	"github.com/dtnitsch/meta-auditor/pkg/nonce"
	"github.com/dtnitsch/meta-auditor/pkg/plugins"
)

// NewInstaller wires the importer installer to the configured plugin
// directory, plugins dir and database.
func NewInstaller(env *Env, secret []byte) (*plugins.Installer, error) {
	issuer, err := nonce.NewIssuer(secret, env.Config.TokenTTL, env.DB)
	if err != nil {
		return nil, err
	}
	f := fetcher.NewFetcher(Timeout)
	directory := plugins.NewHTTPDirectory(env.Config.DirectoryURL, f)
	upgrader := plugins.NewZipUpgrader(env.Config.PluginsDir, f, env.DB, env.Logger)
	return plugins.NewInstaller(directory, upgrader, env.DB, issuer, env.Logger), nil
}
