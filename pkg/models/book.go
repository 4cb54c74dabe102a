package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals travel as JSON numbers, matching the storefront's wire format.
	decimal.MarshalJSONWithoutQuotes = true
}

const AvailabilityInStock = "In Stock"

// Book represents a catalog entry. Detail fields are omitted by the lightweight mock listings.
type Book struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Price           decimal.Decimal `json:"price"`
	Cover           string          `json:"cover"`
	Category        string          `json:"category"`
	Rating          float64         `json:"rating"`
	Description     string          `json:"description,omitempty"`
	ISBN            string          `json:"isbn,omitempty"`
	Publisher       string          `json:"publisher,omitempty"`
	PublicationDate string          `json:"publicationDate,omitempty"`
	Language        string          `json:"language,omitempty"`
	Pages           int             `json:"pages,omitempty"`
	Availability    string          `json:"availability,omitempty"`
}

// MatchesSearch reports whether term is a case-insensitive substring of the title or author.
func (b *Book) MatchesSearch(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term)
}

func (b *Book) IsInStock() bool {
	return b.Availability == AvailabilityInStock
}

// Category is a display entry; Count is advertised and never reconciled with the book set.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

type BookPage struct {
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}
