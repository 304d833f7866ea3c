package models

import "html/template"

// AllOption is the dropdown sentinel meaning "no selection".
const AllOption = "All"

// MatchMode records which keyword strategy produced the result set.
type MatchMode string

const (
	MatchAll      MatchMode = "all"       // no keyword
	MatchPhrase   MatchMode = "phrase"    // keyword found as a contiguous substring
	MatchAllTerms MatchMode = "all_terms" // every term found, any order
	MatchNone     MatchMode = "none"
)

// Criteria holds the four user supplied selectors.
type Criteria struct {
	Keyword string `form:"keyword" json:"keyword"`
	Brand   string `form:"brand" json:"brand"`
	Year    string `form:"year" json:"year"`
	Country string `form:"country" json:"country"`
}

func (c Criteria) HasBrand() bool   { return c.Brand != AllOption }
func (c Criteria) HasYear() bool    { return c.Year != AllOption }
func (c Criteria) HasCountry() bool { return c.Country != AllOption }

// ProductView is a Product annotated for display.
type ProductView struct {
	Product
	Excerpt         template.HTML `json:"excerpt"`
	FullDescription template.HTML `json:"fullDescription"`
}

// SearchResult is the per-request view model.
type SearchResult struct {
	Criteria  Criteria      `json:"criteria"`
	MatchMode MatchMode     `json:"matchMode"`
	Products  []ProductView `json:"products"`
	Brands    []string      `json:"brands"`
	Years     []string      `json:"years"`
	Countries []string      `json:"countries"`
	Total     int           `json:"total"`
}
