// Package server exposes the audit report, the CSV export and the importer
// installer over HTTP.
package server

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/audit"
	"github.com/dtnitsch/meta-auditor/pkg/plugins"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const userKey = "meta-auditor.user"

// Deps are the collaborators the handlers need.
type Deps struct {
	Reports      *audit.Service
	Types        audit.TypeLister
	Installer    *plugins.Installer
	Users        []models.User
	NewImportURL string
	BasePath     string // defaults to "/"
	Logger       *zap.Logger
}

// Server holds the handler state.
type Server struct {
	reports      *audit.Service
	types        audit.TypeLister
	installer    *plugins.Installer
	users        map[string]models.User
	newImportURL string
	base         string
	logger       *zap.Logger
}

// New builds the gin engine. At least one user is required.
func New(deps Deps) (*gin.Engine, error) {
	if len(deps.Users) == 0 {
		return nil, errors.New("at least one user must be configured")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		reports:      deps.Reports,
		types:        deps.Types,
		installer:    deps.Installer,
		users:        make(map[string]models.User, len(deps.Users)),
		newImportURL: deps.NewImportURL,
		base:         normalizeBase(deps.BasePath),
		logger:       logger,
	}
	accounts := gin.Accounts{}
	for _, u := range deps.Users {
		s.users[u.Name] = u
		accounts[u.Name] = u.Password
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.SetHTMLTemplate(tmpl)

	router.GET(s.base+"healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "meta-auditor"})
	})

	authed := router.Group(s.base, gin.BasicAuthForRealm(accounts, "meta-auditor"), s.loadUser)
	authed.GET("", s.handleReport)
	authed.GET("export.csv", s.handleExport)
	authed.GET("install-importer", s.handleInstall)
	authed.POST("install-importer", s.handleInstall)

	return router, nil
}

func normalizeBase(base string) string {
	base = "/" + strings.Trim(base, "/") + "/"
	if base == "//" {
		return "/"
	}
	return base
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// loadUser resolves the authenticated name to its configured user.
func (s *Server) loadUser(c *gin.Context) {
	name := c.GetString(gin.AuthUserKey)
	user, ok := s.users[name]
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Set(userKey, user)
	c.Next()
}

func currentUser(c *gin.Context) models.User {
	user, _ := c.MustGet(userKey).(models.User)
	return user
}
