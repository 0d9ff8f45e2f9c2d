package serve

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtnitsch/meta-auditor/internal/common"
	"github.com/dtnitsch/meta-auditor/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Flags are the serve command flags. They override config and environment.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "addr", Usage: "listen address"},
		&cli.StringFlag{Name: "secret", Usage: "installer token signing key"},
		&cli.StringFlag{Name: "plugins-dir", Usage: "directory plugins are installed into"},
		&cli.StringFlag{Name: "directory-url", Usage: "plugin_information endpoint"},
		&cli.StringFlag{Name: "new-import-url", Usage: "link target of the Start New Import button"},
		&cli.DurationFlag{Name: "token-ttl", Usage: "installer token lifetime"},
		&cli.StringFlag{Name: "base-path", Value: "/", Usage: "URL prefix the report is served under"},
	}
}

// ServeAction runs the HTTP server until SIGINT or SIGTERM.
func ServeAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()
	logger := env.Logger

	secret := []byte(env.Config.Secret)
	if len(secret) == 0 {
		logger.Warn("no token secret configured; installer links will not survive a restart")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("failed to generate token secret: %w", err)
		}
	}
	installer, err := common.NewInstaller(env, secret)
	if err != nil {
		return err
	}

	if !c.Bool(common.FlagVerbose) {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := server.New(server.Deps{
		Reports:      env.Reports,
		Types:        env.DB,
		Installer:    installer,
		Users:        env.Config.Users,
		NewImportURL: env.Config.NewImportURL,
		BasePath:     c.String("base-path"),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	srv := &http.Server{
		Addr:              env.Config.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", env.Config.Addr), zap.String("db", env.DB.Path()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
