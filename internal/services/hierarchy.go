package services

import (
	"slices"

	"github.com/SirClappington/dj-product-explorer/internal/models"
)

// DropdownOptions are the choices offered for each selector.
type DropdownOptions struct {
	Brands    []string
	Years     []string
	Countries []string
}

// ApplyHierarchy narrows the keyword-filtered products by every selector
// that is not "All".
func ApplyHierarchy(filtered []models.Product, criteria models.Criteria) []models.Product {
	return filterProducts(filtered, func(p models.Product) bool {
		if criteria.HasBrand() && p.Brand != criteria.Brand {
			return false
		}
		if criteria.HasYear() && p.Year != criteria.Year {
			return false
		}
		if criteria.HasCountry() && p.Country != criteria.Country {
			return false
		}
		return true
	})
}

// BuildOptions derives the dropdown lists from the keyword-filtered products.
// Brands never narrow themselves; years appear only once a brand is chosen;
// countries follow the brand and year selections.
func BuildOptions(filtered []models.Product, criteria models.Criteria) DropdownOptions {
	opts := DropdownOptions{
		Brands: distinct(filtered, func(p models.Product) string { return p.Brand }),
		Years:  []string{},
	}

	ofBrand := func(p models.Product) bool { return p.Brand == criteria.Brand }

	if criteria.HasBrand() {
		opts.Years = distinct(filterProducts(filtered, ofBrand), func(p models.Product) string { return p.Year })
	}

	country := func(p models.Product) string { return p.Country }
	switch {
	case criteria.HasBrand() && criteria.HasYear():
		opts.Countries = distinct(filterProducts(filtered, func(p models.Product) bool {
			return ofBrand(p) && p.Year == criteria.Year
		}), country)
	case criteria.HasBrand():
		opts.Countries = distinct(filterProducts(filtered, ofBrand), country)
	default:
		opts.Countries = distinct(filtered, country)
	}

	return opts
}

// distinct collects the non-empty values of field, sorted and de-duplicated.
func distinct(products []models.Product, field func(models.Product) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}
