package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SirClappington/dj-product-explorer/internal/errors"
	"github.com/SirClappington/dj-product-explorer/internal/models"
	"github.com/SirClappington/dj-product-explorer/internal/services"
)

type Handler struct {
	search *services.SearchService
	logger *logrus.Logger
}

func NewHandler(search *services.SearchService, logger *logrus.Logger) *Handler {
	return &Handler{
		search: search,
		logger: logger,
	}
}

// Index renders the search page. Criteria come from the query string on GET
// and the form body on POST; anything missing or unreadable falls back to
// the defaults.
func (h *Handler) Index(c *gin.Context) {
	var criteria models.Criteria
	if err := c.ShouldBind(&criteria); err != nil {
		h.logger.WithError(err).Warn("Ignoring unreadable search form")
		criteria = models.Criteria{}
	}

	result := h.search.Search(criteria)
	c.HTML(http.StatusOK, "index.tmpl", result)
}

// SearchAPI returns the same view model as JSON.
func (h *Handler) SearchAPI(c *gin.Context) {
	var criteria models.Criteria
	if err := c.ShouldBind(&criteria); err != nil {
		handleError(c, errors.NewValidationError("invalid search criteria: "+err.Error()), false)
		return
	}

	c.JSON(http.StatusOK, h.search.Search(criteria))
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"products": h.search.TableSize(),
		"source":   h.search.TableSource(),
	})
}
