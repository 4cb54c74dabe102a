package storefront

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf.dev/storefront/internal/router"
	"bookshelf.dev/storefront/pkg/ai"
	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/checkout"
	"bookshelf.dev/storefront/pkg/client"
	"bookshelf.dev/storefront/pkg/global"
	"bookshelf.dev/storefront/pkg/models"
)

func newBackend(t *testing.T) string {
	t.Helper()
	engine := router.NewEngine(global.Config{Env: "test"}, router.Deps{
		Catalog:        catalog.NewService(catalog.NewSeededSource(50, 1)),
		Sessions:       cart.NewMemorySessions(),
		CatalogBackend: router.Backend{Name: "seeded"},
		CartBackend:    router.Backend{Name: "memory"},
	})
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv.URL
}

func newStorefront(t *testing.T) (*Storefront, *bytes.Buffer) {
	t.Helper()
	api, err := client.New(newBackend(t), nil)
	require.NoError(t, err)

	var out bytes.Buffer
	return New(api, cart.NewMemoryStore(), &out), &out
}

func TestStars(t *testing.T) {
	tests := map[float64]string{
		5:   "★★★★★",
		4.7: "★★★★⯪",
		4.5: "★★★★⯪",
		3.4: "★★★☆☆",
		3:   "★★★☆☆",
		0:   "☆☆☆☆☆",
		7:   "★★★★★",
	}
	for rating, want := range tests {
		assert.Equal(t, want, Stars(rating), "rating %v", rating)
	}
}

func TestPageLinks(t *testing.T) {
	assert.Equal(t, "Page 1 of 5: [1] 2 3 »", PageLinks(models.Pagination{Page: 1, TotalPages: 5}))
	assert.Equal(t, "Page 3 of 5: « 1 2 [3] 4 5 »", PageLinks(models.Pagination{Page: 3, TotalPages: 5}))
	assert.Equal(t, "Page 5 of 5: « 3 4 [5] ", PageLinks(models.Pagination{Page: 5, TotalPages: 5}))
}

func TestHome(t *testing.T) {
	shop, out := newStorefront(t)

	require.NoError(t, shop.Home(t.Context()))
	assert.Contains(t, out.String(), "To Kill a Mockingbird")
	assert.Contains(t, out.String(), "$12.99")
	assert.Contains(t, out.String(), "Science Fiction")
	assert.Contains(t, out.String(), "Cart: 0 item(s)")
}

func TestListing(t *testing.T) {
	shop, out := newStorefront(t)

	require.NoError(t, shop.Listing(t.Context(), catalog.Query{Page: 5}))
	assert.Contains(t, out.String(), "Showing 49-50 of 50 books")
	assert.Contains(t, out.String(), "Page 5 of 5")

	out.Reset()
	require.NoError(t, shop.Listing(t.Context(), catalog.Query{Search: "no such title", Page: 1}))
	assert.Equal(t, "No books found matching your criteria.\n", out.String())
}

func TestDetail(t *testing.T) {
	shop, out := newStorefront(t)

	require.NoError(t, shop.Detail(t.Context(), "2", true))
	page := out.String()
	assert.Contains(t, page, "1984\nby George Orwell")
	assert.Contains(t, page, "Penguin Books")
	assert.Contains(t, page, "1984 by George Orwell is a Science Fiction title rated 4.7 out of 5 by our readers.")

	// Science Fiction on the first page: 2, 9, 17, 25, 33, 41, 49. The book itself is skipped.
	assert.Contains(t, page, "Book Title 9 ")
	assert.Contains(t, page, "Book Title 33")
	assert.NotContains(t, page, "Book Title 41")
}

func TestDetailUnknownBook(t *testing.T) {
	shop, out := newStorefront(t)

	err := shop.Detail(t.Context(), "999", false)
	assert.ErrorIs(t, err, ErrBookUnavailable)
	assert.Contains(t, out.String(), "Book not found")

	assert.ErrorIs(t, shop.AddToCart(t.Context(), "999", 1), ErrBookUnavailable)
}

func TestCartPage(t *testing.T) {
	shop, out := newStorefront(t)
	ctx := t.Context()

	require.NoError(t, shop.AddToCart(ctx, "1", 2))
	require.NoError(t, shop.AddToCart(ctx, "2", 1))
	assert.Contains(t, out.String(), "Cart: 3 item(s)")

	out.Reset()
	require.NoError(t, shop.Cart(ctx))
	assert.Contains(t, out.String(), "$25.98")
	assert.Contains(t, out.String(), "$42.96")
	assert.NotContains(t, out.String(), "Discount", "no discount row without a promo")

	out.Reset()
	require.NoError(t, shop.ApplyPromo(ctx, "WELCOME10"))
	assert.Contains(t, out.String(), PromoAppliedMessage)
	assert.Contains(t, out.String(), "-$3.70")
	assert.Contains(t, out.String(), "$39.26")

	out.Reset()
	require.NoError(t, shop.Decrease(ctx, "2"))
	assert.NotContains(t, out.String(), "1984")

	out.Reset()
	require.NoError(t, shop.Increase(ctx, "1"))
	assert.Contains(t, out.String(), "$38.97")

	out.Reset()
	require.NoError(t, shop.ClearCart(ctx))
	assert.Equal(t, "Your cart is empty.\n", out.String())
}

func TestPromoFeedback(t *testing.T) {
	shop, out := newStorefront(t)

	require.NoError(t, shop.ApplyPromo(t.Context(), "  "))
	assert.Equal(t, PromoMissingMessage+"\n", out.String())

	out.Reset()
	require.NoError(t, shop.ApplyPromo(t.Context(), "save20"))
	assert.Equal(t, PromoRejectedMessage+"\n", out.String())
}

func checkoutForm() *checkout.Form {
	return &checkout.Form{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Phone:         "555-0100",
		Address:       "12 Analytical Way",
		City:          "London",
		State:         "LDN",
		ZipCode:       "10001",
		PaymentMethod: models.PaymentPayPal,
		SaveInfo:      true,
	}
}

func TestCheckout(t *testing.T) {
	shop, out := newStorefront(t)
	ctx := t.Context()

	assert.ErrorIs(t, shop.Checkout(ctx, nil), checkout.ErrEmptyCart)

	require.NoError(t, shop.AddToCart(ctx, "3", 1))
	out.Reset()
	require.NoError(t, shop.Checkout(ctx, checkoutForm()))
	assert.Contains(t, out.String(), "The Great Gatsby x 1")
	assert.Contains(t, out.String(), "$15.98")
	assert.Regexp(t, `Order ID: ORD-\d+-\d{4}`, out.String())

	count, err := shop.cart.TotalItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	saved, err := shop.SavedShippingInfo(ctx)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Lovelace", saved.LastName)
}

func TestCheckoutReportsFieldErrors(t *testing.T) {
	shop, out := newStorefront(t)
	ctx := t.Context()
	require.NoError(t, shop.AddToCart(ctx, "3", 1))

	form := checkoutForm()
	form.Email = "nope"
	err := shop.Checkout(ctx, form)

	var verr *checkout.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, out.String(), "email:")

	count, err := shop.cart.TotalItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

type brokenAPI struct {
	API
}

func (brokenAPI) Book(ctx context.Context, id string) (*models.Book, error) {
	return &models.Book{ID: id, Title: "Offline", Category: "Fiction"}, nil
}

func (brokenAPI) Books(ctx context.Context, q catalog.Query) (*models.BookPage, error) {
	return nil, context.Canceled
}

func (brokenAPI) BookInsights(ctx context.Context, id string) (*ai.BookInsights, error) {
	return nil, errors.New("insights offline")
}

func TestDetailDegradesGracefully(t *testing.T) {
	var out bytes.Buffer
	shop := New(brokenAPI{}, cart.NewMemoryStore(), &out)

	require.NoError(t, shop.Detail(t.Context(), "7", true))
	assert.Contains(t, out.String(), "Offline")
	assert.NotContains(t, out.String(), "Reader's Notes")
	assert.Contains(t, out.String(), "Failed to load related books.")
}
