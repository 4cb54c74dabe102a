package catalog

import (
	"net/url"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf.dev/storefront/pkg/models"
)

func seededBooks(t *testing.T) []models.Book {
	t.Helper()
	books, err := NewSeededSource(50, 7).Books(t.Context())
	require.NoError(t, err)
	return books
}

func ids(books []models.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestParseQuery(t *testing.T) {
	tests := map[string]struct {
		raw          string
		wantPage     int
		wantPriceMax string
		wantCategory string
		wantSort     SortKey
	}{
		"defaults":              {raw: "", wantPage: 1},
		"all params":            {raw: "category=Mystery&price_max=20.5&search=tit&sort=price-asc&page=3", wantPage: 3, wantPriceMax: "20.5", wantCategory: "Mystery", wantSort: SortPriceAsc},
		"bad price is ignored":  {raw: "price_max=cheap", wantPage: 1},
		"empty price ignored":   {raw: "price_max=", wantPage: 1},
		"bad page falls back":   {raw: "page=two", wantPage: 1},
		"zero page kept as-is":  {raw: "page=0", wantPage: 0},
		"negative page kept":    {raw: "page=-2", wantPage: -2},
		"unknown sort retained": {raw: "sort=rating", wantPage: 1, wantSort: SortKey("rating")},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.raw)
			require.NoError(t, err)

			q := ParseQuery(values)
			assert.Equal(t, tc.wantPage, q.Page)
			assert.Equal(t, tc.wantCategory, q.Category)
			assert.Equal(t, tc.wantSort, q.Sort)
			if tc.wantPriceMax == "" {
				assert.Nil(t, q.PriceMax)
			} else {
				require.NotNil(t, q.PriceMax)
				assert.True(t, q.PriceMax.Equal(decimal.RequireFromString(tc.wantPriceMax)))
			}
		})
	}
}

func TestQueryValuesRoundTrip(t *testing.T) {
	priceMax := decimal.RequireFromString("15")
	q := Query{Category: "Fantasy", PriceMax: &priceMax, Search: "title 1", Sort: SortTitleDesc, Page: 2}

	back := ParseQuery(q.Values())
	assert.Equal(t, q.Category, back.Category)
	assert.Equal(t, q.Search, back.Search)
	assert.Equal(t, q.Sort, back.Sort)
	assert.Equal(t, q.Page, back.Page)
	require.NotNil(t, back.PriceMax)
	assert.True(t, back.PriceMax.Equal(priceMax))

	assert.Empty(t, Query{Category: CategoryAll, Page: 1}.Values().Get("category"))
}

func TestFilterCategory(t *testing.T) {
	books := seededBooks(t)

	for _, b := range (Query{Category: "Mystery"}).Filter(books) {
		assert.Equal(t, "Mystery", b.Category)
	}
	assert.Len(t, Query{Category: CategoryAll}.Filter(books), len(books))
	assert.Len(t, Query{}.Filter(books), len(books))
	assert.Empty(t, Query{Category: "mystery"}.Filter(books), "category match is exact")
}

func TestFilterPriceMaxIsInclusive(t *testing.T) {
	books := SeedBooks()
	limit := decimal.RequireFromString("10.99")

	got := Query{PriceMax: &limit}.Filter(books)
	assert.ElementsMatch(t, []string{"2", "3", "4"}, ids(got))
}

func TestFilterSearchMatchesTitleOrAuthorIgnoringCase(t *testing.T) {
	books := SeedBooks()

	assert.Equal(t, []string{"1"}, ids(Query{Search: "MOCKINGBIRD"}.Filter(books)))
	assert.Equal(t, []string{"4"}, ids(Query{Search: "jane aus"}.Filter(books)))
	assert.Equal(t, []string{"2"}, ids(Query{Search: "or"}.Filter(books)), "matches George Orwell")
	assert.Equal(t, []string{"3"}, ids(Query{Search: "Gatsby"}.Filter(books)))
	assert.Empty(t, Query{Search: "tolkien"}.Filter(books))
}

func TestSortPriceDescReversesPriceAsc(t *testing.T) {
	asc := seededBooks(t)
	desc := slices.Clone(asc)

	SortBooks(asc, SortPriceAsc)
	SortBooks(desc, SortPriceDesc)

	reversed := slices.Clone(desc)
	slices.Reverse(reversed)
	assert.Equal(t, ids(asc), ids(reversed))

	for i := 1; i < len(asc); i++ {
		assert.True(t, asc[i-1].Price.LessThanOrEqual(asc[i].Price))
	}
}

func TestSortTitle(t *testing.T) {
	books := SeedBooks()

	SortBooks(books, SortTitle)
	assert.Equal(t, []string{"1984", "Pride and Prejudice", "The Great Gatsby", "To Kill a Mockingbird"},
		[]string{books[0].Title, books[1].Title, books[2].Title, books[3].Title})

	SortBooks(books, SortTitleDesc)
	assert.Equal(t, "To Kill a Mockingbird", books[0].Title)
	assert.Equal(t, "1984", books[3].Title)
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	books := seededBooks(t)
	before := ids(books)

	SortBooks(books, SortKey("rating"))
	SortBooks(books, SortNone)
	assert.Equal(t, before, ids(books))
}

func TestPagesPartitionFilteredSet(t *testing.T) {
	books := seededBooks(t)
	q := Query{Search: "book", Sort: SortPriceAsc, Page: 1}

	filtered := q.Filter(books)
	SortBooks(filtered, q.Sort)

	first := Run(books, q)
	require.Equal(t, len(filtered), first.Pagination.TotalItems)
	require.Equal(t, (len(filtered)+PerPage-1)/PerPage, first.Pagination.TotalPages)

	var collected []string
	for page := 1; page <= first.Pagination.TotalPages; page++ {
		q.Page = page
		result := Run(books, q)
		assert.LessOrEqual(t, len(result.Books), PerPage)
		assert.Equal(t, page, result.Pagination.Page)
		assert.Equal(t, PerPage, result.Pagination.PerPage)
		collected = append(collected, ids(result.Books)...)
	}

	assert.Equal(t, ids(filtered), collected)
}

func TestPaginateOutOfRange(t *testing.T) {
	books := seededBooks(t)

	tests := map[string]struct {
		page    int
		wantLen int
	}{
		"first page":        {page: 1, wantLen: PerPage},
		"last partial page": {page: 5, wantLen: 2},
		"past the end":      {page: 6, wantLen: 0},
		"zero":              {page: 0, wantLen: 0},
		"negative":          {page: -3, wantLen: 0},
		"huge":              {page: int(^uint(0) >> 1), wantLen: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result := Paginate(books, tc.page)
			assert.Len(t, result.Books, tc.wantLen)
			assert.NotNil(t, result.Books)
			assert.Equal(t, tc.page, result.Pagination.Page)
			assert.Equal(t, 50, result.Pagination.TotalItems)
			assert.Equal(t, 5, result.Pagination.TotalPages)
		})
	}
}

func TestPaginateEmptySet(t *testing.T) {
	result := Paginate(nil, 1)
	assert.Empty(t, result.Books)
	assert.Equal(t, 0, result.Pagination.TotalPages)
}
