package models

import "github.com/shopspring/decimal"

// Product represents one row of the product dataset.
// String attributes use "" for a missing cell.
type Product struct {
	Index       int                 `json:"index"`
	Name        string              `json:"name"`
	Brand       string              `json:"brand"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
	Description string              `json:"description,omitempty"`
	ImageAWS    string              `json:"imageAws,omitempty"`
	Image       string              `json:"image,omitempty"`
	Year        string              `json:"year,omitempty"`
	Country     string              `json:"country,omitempty"`
}

// ImageURL returns the primary image, falling back to the secondary one.
func (p Product) ImageURL() string {
	if p.ImageAWS != "" {
		return p.ImageAWS
	}
	return p.Image
}

// PriceLabel formats the price as dollars, or "" when the price is missing.
func (p Product) PriceLabel() string {
	if !p.Price.Valid {
		return ""
	}
	return "$" + p.Price.Decimal.StringFixed(2)
}
