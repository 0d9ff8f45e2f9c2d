package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dtnitsch/meta-auditor/models"
	"github.com/dtnitsch/meta-auditor/pkg/csvexport"
	"github.com/dtnitsch/meta-auditor/pkg/plugins"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorView struct {
	Title   string
	Message string
	Back    string
}

func (s *Server) handleReport(c *gin.Context) {
	user := currentUser(c)
	if !user.Can(models.CapManageOptions) {
		s.denied(c)
		return
	}
	ctx := c.Request.Context()

	q, err := s.reports.Resolve(ctx, c.Request.URL.Query())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if err := s.reports.Remember(ctx, q); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	report, err := s.reports.Build(ctx, q)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	types, err := s.types.PublicPostTypes(ctx)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	importer, err := s.importerView(c, user)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	view := newReportView(s.base, report, types, importer)
	view.JustInstalled = c.Query("wpai_installed") != ""
	c.HTML(http.StatusOK, "report.html", view)
}

func (s *Server) importerView(c *gin.Context, user models.User) (importerView, error) {
	active, err := s.installer.ImporterActive(c.Request.Context())
	if err != nil {
		return importerView{}, err
	}
	if active {
		return importerView{Active: true, NewImportHref: s.newImportURL}, nil
	}

	token, err := s.installer.InstallToken(user)
	if err != nil {
		return importerView{}, err
	}
	href := s.base + "install-importer?" + url.Values{"_wpnonce": {token}}.Encode()
	return importerView{InstallHref: href}, nil
}

// handleExport serves the filtered, sorted, unpaginated set as CSV. It
// does not touch the stored type selection.
func (s *Server) handleExport(c *gin.Context) {
	if !currentUser(c).Can(models.CapManageOptions) {
		s.denied(c)
		return
	}
	ctx := c.Request.Context()

	q, err := s.reports.Resolve(ctx, c.Request.URL.Query())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	report, err := s.reports.Build(ctx, q)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvexport.Encode(report.Records))
}

func (s *Server) handleInstall(c *gin.Context) {
	user := currentUser(c)
	token := c.Query("_wpnonce")
	if token == "" {
		token = c.PostForm("_wpnonce")
	}

	_, err := s.installer.InstallImporter(c.Request.Context(), user, token)
	switch {
	case errors.Is(err, plugins.ErrPermission):
		s.denied(c)
		return
	case err != nil:
		s.fail(c, http.StatusBadGateway, err)
		return
	}

	c.Redirect(http.StatusSeeOther, s.base+"?wpai_installed=1")
}

func (s *Server) denied(c *gin.Context) {
	c.HTML(http.StatusForbidden, "error.html", errorView{
		Title:   "Permission denied.",
		Message: "You are not allowed to perform this action.",
		Back:    s.base,
	})
	c.Abort()
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	s.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.HTML(status, "error.html", errorView{
		Title:   http.StatusText(status),
		Message: err.Error(),
		Back:    s.base,
	})
	c.Abort()
}
