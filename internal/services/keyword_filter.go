package services

import (
	"strings"

	"github.com/SirClappington/dj-product-explorer/internal/models"
)

// SplitTerms splits a keyword on whitespace.
func SplitTerms(keyword string) []string {
	return strings.Fields(keyword)
}

// FilterByKeyword keeps products whose description contains keyword.
//
// The whole keyword is tried first as a phrase. When nothing matches and the
// keyword has more than one term, products containing every term in any order
// are returned instead. Matching is case-insensitive substring containment and
// keeps table order.
func FilterByKeyword(products []models.Product, keyword string) ([]models.Product, models.MatchMode) {
	if keyword == "" {
		return products, models.MatchAll
	}

	phrase := strings.ToLower(keyword)
	matched := filterProducts(products, func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Description), phrase)
	})
	if len(matched) > 0 {
		return matched, models.MatchPhrase
	}

	terms := SplitTerms(phrase)
	if len(terms) <= 1 {
		return matched, models.MatchNone
	}

	matched = filterProducts(products, func(p models.Product) bool {
		desc := strings.ToLower(p.Description)
		for _, term := range terms {
			if !strings.Contains(desc, term) {
				return false
			}
		}
		return true
	})
	if len(matched) == 0 {
		return matched, models.MatchNone
	}
	return matched, models.MatchAllTerms
}

func filterProducts(products []models.Product, keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
