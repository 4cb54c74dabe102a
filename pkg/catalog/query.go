package catalog

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"bookshelf.dev/storefront/pkg/models"
)

const PerPage = 12

// CategoryAll disables the category filter.
const CategoryAll = "all"

type SortKey string

const (
	SortNone      SortKey = ""
	SortTitle     SortKey = "title"
	SortTitleDesc SortKey = "title-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// Query holds the listing parameters. A nil PriceMax means no price filter.
type Query struct {
	Category string
	PriceMax *decimal.Decimal
	Search   string
	Sort     SortKey
	Page     int
}

// ParseQuery reads category, price_max, search, sort and page. Malformed numbers never
// fail: a bad price_max drops the price filter and a bad page falls back to 1.
func ParseQuery(values url.Values) Query {
	q := Query{
		Category: values.Get("category"),
		Search:   values.Get("search"),
		Sort:     SortKey(values.Get("sort")),
		Page:     1,
	}

	if raw := strings.TrimSpace(values.Get("price_max")); raw != "" {
		if priceMax, err := decimal.NewFromString(raw); err == nil {
			q.PriceMax = &priceMax
		}
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			q.Page = page
		}
	}

	return q
}

// Values is the inverse of ParseQuery, omitting parameters that are unset.
func (q Query) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	if q.Category != "" && q.Category != CategoryAll {
		values.Set("category", q.Category)
	}
	if q.PriceMax != nil {
		values.Set("price_max", q.PriceMax.String())
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Sort != SortNone {
		values.Set("sort", string(q.Sort))
	}
	return values
}

// Filter applies the category, price and search filters, keeping the input order.
func (q Query) Filter(books []models.Book) []models.Book {
	filtered := make([]models.Book, 0, len(books))
	for _, book := range books {
		if q.Category != "" && q.Category != CategoryAll && book.Category != q.Category {
			continue
		}
		if q.PriceMax != nil && book.Price.GreaterThan(*q.PriceMax) {
			continue
		}
		if q.Search != "" && !book.MatchesSearch(q.Search) {
			continue
		}
		filtered = append(filtered, book)
	}
	return filtered
}

// SortBooks sorts in place. The -desc keys reverse the stable ascending order, so ties
// come out in reverse input order. Unknown keys leave the slice untouched.
func SortBooks(books []models.Book, key SortKey) {
	switch key {
	case SortTitle, SortTitleDesc:
		slices.SortStableFunc(books, func(a, b models.Book) int {
			return strings.Compare(a.Title, b.Title)
		})
	case SortPriceAsc, SortPriceDesc:
		slices.SortStableFunc(books, func(a, b models.Book) int {
			return a.Price.Cmp(b.Price)
		})
	default:
		return
	}

	if key == SortTitleDesc || key == SortPriceDesc {
		slices.Reverse(books)
	}
}

// Paginate slices out one page. Page numbers below 1 or past the end give an empty page;
// the requested page number is echoed back unchanged.
func Paginate(books []models.Book, page int) models.BookPage {
	total := len(books)
	result := models.BookPage{
		Books: []models.Book{},
		Pagination: models.Pagination{
			Page:       page,
			PerPage:    PerPage,
			TotalItems: total,
			TotalPages: (total + PerPage - 1) / PerPage,
		},
	}

	if page > math.MaxInt/PerPage || page < math.MinInt/PerPage+1 {
		return result
	}

	start := clamp((page-1)*PerPage, 0, total)
	end := clamp((page-1)*PerPage+PerPage, 0, total)
	result.Books = append(result.Books, books[start:end]...)
	return result
}

// Run is the full listing pipeline: filter, sort, paginate.
func Run(books []models.Book, q Query) models.BookPage {
	filtered := q.Filter(books)
	SortBooks(filtered, q.Sort)
	return Paginate(filtered, q.Page)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
