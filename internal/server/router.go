package server

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SirClappington/dj-product-explorer/internal/errors"
	"github.com/SirClappington/dj-product-explorer/internal/services"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcMap = template.FuncMap{
	"plural": func(n int) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
}

// NewRouter wires the search page, the JSON search API and the health check.
func NewRouter(search *services.SearchService, logger *logrus.Logger) (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	r := gin.New()
	r.Use(requestLogger(logger), gin.CustomRecovery(func(c *gin.Context, recovered any) {
		handleError(c, fmt.Errorf("panic while serving request: %v", recovered), true)
	}))
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("error configuring trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	h := NewHandler(search, logger)

	r.GET("/", h.Index)
	r.POST("/", h.Index)

	api := r.Group("/api")
	api.GET("/search", h.SearchAPI)
	api.POST("/search", h.SearchAPI)

	r.GET("/healthz", h.Health)

	r.NoRoute(func(c *gin.Context) {
		handleError(c, errors.NewNotFoundError(fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path)), false)
	})

	return r, nil
}
