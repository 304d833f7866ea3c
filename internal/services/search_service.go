package services

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/SirClappington/dj-product-explorer/internal/catalog"
	"github.com/SirClappington/dj-product-explorer/internal/models"
)

type SearchService struct {
	table  *catalog.Table
	logger *logrus.Logger
}

func NewSearchService(table *catalog.Table, logger *logrus.Logger) *SearchService {
	return &SearchService{
		table:  table,
		logger: logger,
	}
}

// NormalizeCriteria trims and lowercases the keyword and replaces empty
// selectors with "All".
func NormalizeCriteria(c models.Criteria) models.Criteria {
	c.Keyword = strings.ToLower(strings.TrimSpace(c.Keyword))
	if c.Brand == "" {
		c.Brand = models.AllOption
	}
	if c.Year == "" {
		c.Year = models.AllOption
	}
	if c.Country == "" {
		c.Country = models.AllOption
	}
	return c
}

// Search runs the full keyword, hierarchy and highlight pipeline over the
// table. It scans every product on each call.
func (s *SearchService) Search(criteria models.Criteria) *models.SearchResult {
	criteria = NormalizeCriteria(criteria)

	filtered, mode := FilterByKeyword(s.table.Products(), criteria.Keyword)
	options := BuildOptions(filtered, criteria)
	selected := ApplyHierarchy(filtered, criteria)

	terms := SplitTerms(criteria.Keyword)
	views := make([]models.ProductView, 0, len(selected))
	for _, p := range selected {
		excerpt, full := Annotate(p.Description, terms)
		views = append(views, models.ProductView{
			Product:         p,
			Excerpt:         excerpt,
			FullDescription: full,
		})
	}

	s.logger.WithFields(logrus.Fields{
		"keyword":    criteria.Keyword,
		"brand":      criteria.Brand,
		"year":       criteria.Year,
		"country":    criteria.Country,
		"match_mode": mode,
		"matched":    len(filtered),
		"shown":      len(views),
	}).Debug("Search completed")

	return &models.SearchResult{
		Criteria:  criteria,
		MatchMode: mode,
		Products:  views,
		Brands:    options.Brands,
		Years:     options.Years,
		Countries: options.Countries,
		Total:     len(views),
	}
}

// TableSize reports how many products are loaded.
func (s *SearchService) TableSize() int {
	return s.table.Len()
}

// TableSource reports where the products were loaded from.
func (s *SearchService) TableSource() string {
	return s.table.Source()
}
