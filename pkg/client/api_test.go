package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/models"
)

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
}

func newStubServer(t *testing.T, status int, body string) (*httptest.Server, <-chan recordedRequest) {
	t.Helper()
	ch := make(chan recordedRequest, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		ch <- recordedRequest{Method: r.Method, Path: r.URL.Path, RawQuery: r.URL.RawQuery, Body: string(data)}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL, nil)
	require.NoError(t, err)
	return c
}

func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestBooksSendsQuery(t *testing.T) {
	srv, reqs := newStubServer(t, http.StatusOK, `{"books":[{"id":"9","title":"Book Title 9","price":14.99}],"pagination":{"page":2,"perPage":12,"totalItems":13,"totalPages":2}}`)
	c := newTestClient(t, srv.URL)

	priceMax := decimal.RequireFromString("20")
	page, err := c.Books(t.Context(), catalog.Query{Category: "Mystery", PriceMax: &priceMax, Search: "a b", Sort: catalog.SortPriceDesc, Page: 2})
	require.NoError(t, err)

	req := <-reqs
	assert.Equal(t, "/api/books", req.Path)
	assert.Equal(t, "category=Mystery&page=2&price_max=20&search=a+b&sort=price-desc", req.RawQuery)

	require.Len(t, page.Books, 1)
	assert.Equal(t, "14.99", page.Books[0].Price.StringFixed(2))
	assert.Equal(t, 13, page.Pagination.TotalItems)
}

func TestBooksFallsBackWhenServerIsDown(t *testing.T) {
	c := newTestClient(t, deadURL(t))

	page, err := c.Books(t.Context(), catalog.Query{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Books, catalog.PerPage)
	assert.Equal(t, 50, page.Pagination.TotalItems)
	assert.Equal(t, "Book Title 1", page.Books[0].Title, "offline list has no seed books")
	assert.Empty(t, page.Books[0].Description)
}

func TestFallbackOnServerError(t *testing.T) {
	srv, _ := newStubServer(t, http.StatusInternalServerError, `{"error":"boom"}`)
	c := newTestClient(t, srv.URL)

	featured, err := c.FeaturedBooks(t.Context())
	require.NoError(t, err)
	require.Len(t, featured, 4)
	assert.Equal(t, "To Kill a Mockingbird", featured[0].Title)

	categories, err := c.Categories(t.Context())
	require.NoError(t, err)
	assert.Len(t, categories, 8)
}

func TestFallbackOnMalformedBody(t *testing.T) {
	srv, _ := newStubServer(t, http.StatusOK, `<html>`)
	c := newTestClient(t, srv.URL)

	categories, err := c.Categories(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Fiction", categories[0].Name)
}

func TestBookNotFoundIsNotMasked(t *testing.T) {
	srv, reqs := newStubServer(t, http.StatusNotFound, `{"error":"Book not found"}`)
	c := newTestClient(t, srv.URL)

	_, err := c.Book(t.Context(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "/api/books/999", (<-reqs).Path)
}

func TestBookFallback(t *testing.T) {
	c := newTestClient(t, deadURL(t))

	book, err := c.Book(t.Context(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Book Title 7", book.Title)
	assert.Equal(t, "978-1-23456-007-0", book.ISBN)
	assert.Equal(t, 320, book.Pages)

	book, err = c.Book(t.Context(), "40")
	require.NoError(t, err)
	assert.Equal(t, "Detailed Book 40", book.Title, "only the first offline page is searched")
	assert.Equal(t, "14.99", book.Price.StringFixed(2))
	assert.Equal(t, "978-1-23456-040-0", book.ISBN)
}

func TestCancelledContextDoesNotFallBack(t *testing.T) {
	c := newTestClient(t, deadURL(t))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := c.Books(ctx, catalog.Query{Page: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitOrder(t *testing.T) {
	srv, reqs := newStubServer(t, http.StatusOK, `{"success":true,"orderId":"ORD-1700000000-4242","message":"Order placed successfully"}`)
	c := newTestClient(t, srv.URL)

	order := &models.Order{
		Customer:      models.Customer{FirstName: "Ada", LastName: "Lovelace"},
		Items:         []models.CartItem{{ID: "1", Price: decimal.RequireFromString("12.99"), Quantity: 2}},
		PaymentMethod: models.PaymentPayPal,
	}
	confirmation, err := c.SubmitOrder(t.Context(), order)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1700000000-4242", confirmation.OrderID)

	req := <-reqs
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/orders", req.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &sent))
	assert.Equal(t, "paypal", sent["paymentMethod"])
	assert.Equal(t, 12.99, sent["items"].([]any)[0].(map[string]any)["price"])
}

func TestSubmitOrderFallback(t *testing.T) {
	c := newTestClient(t, deadURL(t))

	confirmation, err := c.SubmitOrder(t.Context(), &models.Order{})
	require.NoError(t, err)
	assert.True(t, confirmation.Success)
	assert.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-Z]{8}$`), confirmation.OrderID)
}

func TestBookInsights(t *testing.T) {
	srv, reqs := newStubServer(t, http.StatusOK, `{"success":true,"data":{"bookId":"3","notes":"A classic.","aiEnabled":false}}`)
	c := newTestClient(t, srv.URL)

	insights, err := c.BookInsights(t.Context(), "3")
	require.NoError(t, err)
	assert.Equal(t, "A classic.", insights.Notes)
	assert.Equal(t, "/api/books/3/insights", (<-reqs).Path)
}
