package common

import (
	"fmt"
	"time"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/audit"
	"github.com/dtnitsch/meta-auditor/pkg/db"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global flag names shared by every command.
const (
	FlagConfig  = "config"
	FlagDB      = "db"
	FlagVerbose = "verbose"
)

// GlobalFlags are registered on the app and read by LoadConfig.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Value:   "meta-auditor.yaml",
			Usage:   "YAML config file (skipped when missing)",
		},
		&cli.StringFlag{
			Name:  FlagDB,
			Usage: "SQLite database path (overrides config and META_AUDITOR_DB)",
		},
		&cli.BoolFlag{
			Name:    FlagVerbose,
			Aliases: []string{"v"},
			Usage:   "debug logging",
		},
	}
}

// LoadConfig reads the config file and environment, then applies the
// command line overrides.
func LoadConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String(FlagConfig))
	if err != nil {
		return cfg, err
	}
	if c.IsSet(FlagDB) {
		cfg.DBPath = c.String(FlagDB)
	}
	overrideString(c, "addr", &cfg.Addr)
	overrideString(c, "secret", &cfg.Secret)
	overrideString(c, "plugins-dir", &cfg.PluginsDir)
	overrideString(c, "directory-url", &cfg.DirectoryURL)
	overrideString(c, "new-import-url", &cfg.NewImportURL)
	if c.IsSet("token-ttl") {
		cfg.TokenTTL = c.Duration("token-ttl")
	}
	return cfg, nil
}

func overrideString(c *cli.Context, flag string, dst *string) {
	if c.IsSet(flag) {
		*dst = c.String(flag)
	}
}

// NewLogger builds the production zap logger, at debug level with --verbose.
func NewLogger(c *cli.Context) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.Bool(FlagVerbose) {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Env bundles what most commands need.
type Env struct {
	Config  models.Config
	DB      *db.DB
	Logger  *zap.Logger
	Reports *audit.Service
}

// Setup loads config, builds the logger and opens the database.
// Close must be called when the command is done.
func Setup(c *cli.Context) (*Env, error) {
	cfg, err := LoadConfig(c)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(c)
	if err != nil {
		return nil, err
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Env{
		Config:  cfg,
		DB:      database,
		Logger:  logger,
		Reports: audit.NewService(database, database, logger),
	}, nil
}

// Close releases the database and flushes the logger.
func (e *Env) Close() {
	_ = e.DB.Close()
	_ = e.Logger.Sync()
}

// Timeout is the default HTTP timeout for outbound requests.
const Timeout = 30 * time.Second
