package services

import (
	"html/template"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirClappington/dj-product-explorer/internal/catalog"
	"github.com/SirClappington/dj-product-explorer/internal/models"
)

func newTestService(products ...models.Product) *SearchService {
	logger, _ := test.NewNullLogger()
	return NewSearchService(catalog.NewTable("memory", products), logger)
}

func TestNormalizeCriteria(t *testing.T) {
	got := NormalizeCriteria(models.Criteria{Keyword: "  Running SHOE "})
	assert.Equal(t, models.Criteria{
		Keyword: "running shoe",
		Brand:   models.AllOption,
		Year:    models.AllOption,
		Country: models.AllOption,
	}, got)
}

func TestSearch_NoCriteriaReturnsEverythingUnmarked(t *testing.T) {
	svc := newTestService(
		models.Product{Name: "a", Brand: "Acme", Year: "2020", Country: "US", Description: "Red shoe"},
		models.Product{Name: "b", Brand: "Globex", Year: "2021", Country: "CA"},
	)

	res := svc.Search(models.Criteria{})
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, models.MatchAll, res.MatchMode)
	assert.Equal(t, []string{"Acme", "Globex"}, res.Brands)
	assert.Empty(t, res.Years)
	assert.Equal(t, []string{"CA", "US"}, res.Countries)
	assert.Equal(t, template.HTML("Red shoe"), res.Products[0].Excerpt)
	assert.Equal(t, template.HTML(""), res.Products[1].FullDescription)
	assert.Equal(t, 1, res.Products[1].Index)
}

func TestSearch_KeywordHighlightsAndCascades(t *testing.T) {
	svc := newTestService(
		models.Product{Name: "a", Brand: "Acme", Year: "2020", Country: "US", Description: "Red shoes are nice"},
		models.Product{Name: "b", Brand: "Acme", Year: "2021", Country: "CA", Description: "A red hat"},
		models.Product{Name: "c", Brand: "Globex", Year: "2020", Country: "FR", Description: "Red shoe laces"},
	)

	res := svc.Search(models.Criteria{Keyword: "RED shoe", Brand: "Acme"})
	require.Equal(t, 1, res.Total)
	assert.Equal(t, models.MatchPhrase, res.MatchMode)
	assert.Equal(t, "red shoe", res.Criteria.Keyword)
	assert.Equal(t, []string{"Acme", "Globex"}, res.Brands)
	assert.Equal(t, []string{"2020"}, res.Years)
	assert.Equal(t, []string{"US"}, res.Countries)
	assert.Equal(t, "a", res.Products[0].Name)
	assert.Equal(t, template.HTML("<mark>Red</mark> <mark>shoe</mark>s are nice"), res.Products[0].FullDescription)
}

func TestSearch_StaleSelectionYieldsNoProducts(t *testing.T) {
	svc := newTestService(
		models.Product{Name: "a", Brand: "Acme", Year: "2020", Country: "US", Description: "boots"},
	)

	res := svc.Search(models.Criteria{Keyword: "boots", Brand: "Globex", Year: "All", Country: "All"})
	assert.Equal(t, 0, res.Total)
	assert.NotNil(t, res.Products)
	assert.Equal(t, []string{"Acme"}, res.Brands)
	assert.Empty(t, res.Years)
	assert.Empty(t, res.Countries)
}

func TestSearchService_TableInfo(t *testing.T) {
	svc := newTestService(models.Product{Name: "a"})
	assert.Equal(t, 1, svc.TableSize())
	assert.Equal(t, "memory", svc.TableSource())
}
