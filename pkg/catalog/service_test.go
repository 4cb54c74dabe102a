package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf.dev/storefront/pkg/models"
)

type fakeSource struct {
	books []models.Book
	err   error
}

func (f *fakeSource) Books(ctx context.Context) ([]models.Book, error) {
	return f.books, f.err
}

func (f *fakeSource) Featured(ctx context.Context) ([]models.Book, error) {
	return f.books[:1], f.err
}

func (f *fakeSource) Categories(ctx context.Context) ([]models.Category, error) {
	return DefaultCategories(), f.err
}

func TestGenerateBooksShape(t *testing.T) {
	books := GenerateBooks(50, globalRand{})
	require.Len(t, books, 50)

	for i, book := range books {
		assert.Equal(t, fmt.Sprint(i+1), book.ID)
		assert.False(t, book.Price.IsNegative())
		assert.GreaterOrEqual(t, book.Rating, 0.0)
		assert.LessOrEqual(t, book.Rating, 5.0)
	}

	b := books[4]
	assert.Equal(t, "Book Title 5", b.Title)
	assert.Equal(t, "Author 2", b.Author)
	assert.Equal(t, "Self-Help", b.Category)
	assert.Equal(t, "978-1-23456-005-0", b.ISBN)
	assert.Equal(t, "99", b.Price.Sub(b.Price.Floor()).Shift(2).String())
	assert.True(t, b.Price.GreaterThanOrEqual(decimal.RequireFromString("5.99")))
	assert.True(t, b.Price.LessThanOrEqual(decimal.RequireFromString("34.99")))
	assert.GreaterOrEqual(t, b.Pages, 300)
	assert.Less(t, b.Pages, 500)

	assert.Equal(t, "Fiction", books[7].Category, "id 8 mod 8 is the first category")
}

func TestSeededSourceIsStable(t *testing.T) {
	a, err := NewSeededSource(30, 99).Books(t.Context())
	require.NoError(t, err)
	b, err := NewSeededSource(30, 99).Books(t.Context())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	src := NewSeededSource(30, 99)
	first, _ := src.Books(t.Context())
	first[0].Title = "mutated"
	second, _ := src.Books(t.Context())
	assert.Equal(t, "To Kill a Mockingbird", second[0].Title)
}

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()
	require.Len(t, categories, 8)
	assert.Equal(t, models.Category{ID: "1", Name: "Fiction", Count: 25}, categories[0])
	assert.Equal(t, models.Category{ID: "8", Name: "Fantasy", Count: 20}, categories[7])
}

func TestServiceGetBook(t *testing.T) {
	svc := NewService(NewGeneratedSource(50))

	book, err := svc.GetBook(t.Context(), "3")
	require.NoError(t, err)
	assert.Equal(t, "The Great Gatsby", book.Title)

	book, err = svc.GetBook(t.Context(), "50")
	require.NoError(t, err)
	assert.Equal(t, "Book Title 50", book.Title)

	for _, id := range []string{"51", "0", "", "03"} {
		_, err = svc.GetBook(t.Context(), id)
		assert.ErrorIs(t, err, ErrBookNotFound, "id %q", id)
	}
}

func TestServiceListBooks(t *testing.T) {
	svc := NewService(NewGeneratedSource(50))

	page, err := svc.ListBooks(t.Context(), Query{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Books, PerPage)
	assert.Equal(t, models.Pagination{Page: 1, PerPage: 12, TotalItems: 50, TotalPages: 5}, page.Pagination)
}

func TestServicePropagatesSourceErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&fakeSource{books: SeedBooks(), err: boom})

	_, err := svc.ListBooks(t.Context(), Query{Page: 1})
	assert.ErrorIs(t, err, boom)
	_, err = svc.GetBook(t.Context(), "1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrBookNotFound)
}

func TestRelatedBooks(t *testing.T) {
	page := Run(GenerateBooks(50, globalRand{}), Query{Category: "Fiction", Page: 1})
	current := page.Books[0]

	related := RelatedBooks(&page, &current, 4)
	assert.Len(t, related, 4)
	for _, b := range related {
		assert.NotEqual(t, current.ID, b.ID)
		assert.Equal(t, "Fiction", b.Category)
	}
}
