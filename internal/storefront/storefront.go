package storefront

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"bookshelf.dev/storefront/pkg/ai"
	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/checkout"
	"bookshelf.dev/storefront/pkg/models"
)

// API is the slice of the storefront client the pages need. *client.Client implements it.
type API interface {
	FeaturedBooks(ctx context.Context) ([]models.Book, error)
	Books(ctx context.Context, q catalog.Query) (*models.BookPage, error)
	Book(ctx context.Context, id string) (*models.Book, error)
	Categories(ctx context.Context) ([]models.Category, error)
	BookInsights(ctx context.Context, id string) (*ai.BookInsights, error)
	SubmitOrder(ctx context.Context, order *models.Order) (*models.OrderConfirmation, error)
}

// Storefront renders the shop pages as plain text. Cart state lives in the injected store.
type Storefront struct {
	api      API
	cart     *cart.Engine
	checkout *checkout.Service
	out      io.Writer
}

func New(api API, store cart.Store, out io.Writer) *Storefront {
	return &Storefront{
		api:      api,
		cart:     cart.NewEngine(store),
		checkout: checkout.NewService(store, api),
		out:      out,
	}
}

func (s *Storefront) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Storefront) table() *tabwriter.Writer {
	return tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
}

// Money formats an amount the way the pages show prices: $12.99.
func Money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// Stars draws a five star rating. A fractional part of .5 or more adds a half star.
func Stars(rating float64) string {
	rating = max(0, min(rating, 5))
	full := int(rating)
	half := rating-float64(full) >= 0.5
	empty := 5 - full
	if half {
		empty--
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half {
		b.WriteString("⯪")
	}
	b.WriteString(strings.Repeat("☆", empty))
	return b.String()
}

// cartBadge mirrors the item count shown next to the cart link on every page.
func (s *Storefront) cartBadge(ctx context.Context) {
	count, err := s.cart.TotalItems(ctx)
	if err != nil {
		return
	}
	s.printf("Cart: %d item(s)\n", count)
}

func (s *Storefront) bookRows(books []models.Book) error {
	w := s.table()
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tRATING\tPRICE")
	for _, book := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", book.ID, book.Title, book.Author, Stars(book.Rating), Money(book.Price))
	}
	return w.Flush()
}
