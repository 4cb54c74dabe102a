package storefront

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/client"
	"bookshelf.dev/storefront/pkg/models"
)

const relatedLimit = 4

// pageWindow is how many page numbers are listed on each side of the current page.
const pageWindow = 2

var ErrBookUnavailable = errors.New("book unavailable")

func (s *Storefront) Home(ctx context.Context) error {
	featured, err := s.api.FeaturedBooks(ctx)
	if err != nil {
		return fmt.Errorf("load featured books: %w", err)
	}
	categories, err := s.api.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	s.printf("Featured Books\n\n")
	if err := s.bookRows(featured); err != nil {
		return err
	}

	s.printf("\nBrowse by Category\n\n")
	if err := s.categoryRows(categories); err != nil {
		return err
	}

	s.printf("\n")
	s.cartBadge(ctx)
	return nil
}

func (s *Storefront) Categories(ctx context.Context) error {
	categories, err := s.api.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	return s.categoryRows(categories)
}

func (s *Storefront) categoryRows(categories []models.Category) error {
	w := s.table()
	fmt.Fprintln(w, "CATEGORY\tBOOKS")
	for _, category := range categories {
		fmt.Fprintf(w, "%s\t%d\n", category.Name, category.Count)
	}
	return w.Flush()
}

// Listing shows one page of the catalog for the given filters.
func (s *Storefront) Listing(ctx context.Context, q catalog.Query) error {
	page, err := s.api.Books(ctx, q)
	if err != nil {
		return fmt.Errorf("load books: %w", err)
	}

	if len(page.Books) == 0 {
		s.printf("No books found matching your criteria.\n")
		return nil
	}

	if err := s.bookRows(page.Books); err != nil {
		return err
	}

	p := page.Pagination
	first := (p.Page-1)*p.PerPage + 1
	s.printf("\nShowing %d-%d of %d books\n", first, first+len(page.Books)-1, p.TotalItems)
	if p.TotalPages > 1 {
		s.printf("%s\n", PageLinks(p))
	}
	return nil
}

// PageLinks renders the pager: previous, up to two pages either side of the current one
// (current in brackets), next. Unavailable arrows are left out.
func PageLinks(p models.Pagination) string {
	links := ""
	if p.Page > 1 {
		links += "« "
	}
	for i := max(1, p.Page-pageWindow); i <= min(p.TotalPages, p.Page+pageWindow); i++ {
		if i == p.Page {
			links += fmt.Sprintf("[%d] ", i)
		} else {
			links += fmt.Sprintf("%d ", i)
		}
	}
	if p.Page < p.TotalPages {
		links += "»"
	}
	return fmt.Sprintf("Page %d of %d: %s", p.Page, p.TotalPages, links)
}

// Detail shows one book with its related titles. Insights are fetched only when asked for and
// are skipped quietly when the backend cannot provide them.
func (s *Storefront) Detail(ctx context.Context, id string, withInsights bool) error {
	book, err := s.api.Book(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		s.printf("Book not found. Browse all books with the books command.\n")
		return ErrBookUnavailable
	}
	if err != nil {
		return fmt.Errorf("load book %s: %w", id, err)
	}

	s.printf("%s\nby %s\n\n", book.Title, book.Author)

	w := s.table()
	fmt.Fprintf(w, "Rating\t%s (%.1f)\n", Stars(book.Rating), book.Rating)
	fmt.Fprintf(w, "Price\t%s\n", Money(book.Price))
	fmt.Fprintf(w, "Category\t%s\n", book.Category)
	fmt.Fprintf(w, "Availability\t%s\n", book.Availability)
	fmt.Fprintf(w, "ISBN\t%s\n", book.ISBN)
	fmt.Fprintf(w, "Publisher\t%s\n", book.Publisher)
	fmt.Fprintf(w, "Published\t%s\n", book.PublicationDate)
	fmt.Fprintf(w, "Language\t%s\n", book.Language)
	fmt.Fprintf(w, "Pages\t%d\n", book.Pages)
	if err := w.Flush(); err != nil {
		return err
	}

	if book.Description != "" {
		s.printf("\n%s\n", book.Description)
	}
	if book.IsInStock() {
		s.printf("\nAdd it to your cart with: shelf cart add %s\n", book.ID)
	}

	if withInsights {
		insights, err := s.api.BookInsights(ctx, book.ID)
		if err != nil {
			log.Printf("Error fetching insights for book %s: %v", book.ID, err)
		} else {
			s.printf("\nReader's Notes\n%s\n", insights.Notes)
		}
	}

	s.printf("\nYou May Also Like\n\n")
	page, err := s.api.Books(ctx, catalog.Query{Category: book.Category, Page: 1})
	if err != nil {
		log.Printf("Error loading related books: %v", err)
		s.printf("Failed to load related books.\n")
		return nil
	}

	related := catalog.RelatedBooks(page, book, relatedLimit)
	if len(related) == 0 {
		s.printf("No related books found.\n")
		return nil
	}
	return s.bookRows(related)
}

// AddToCart puts quantity copies of a book in the cart.
func (s *Storefront) AddToCart(ctx context.Context, id string, quantity int) error {
	book, err := s.api.Book(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		s.printf("Book not found.\n")
		return ErrBookUnavailable
	}
	if err != nil {
		return fmt.Errorf("load book %s: %w", id, err)
	}

	if _, err := s.cart.AddItem(ctx, *book, quantity); err != nil {
		return err
	}

	s.printf("%d x %s added to your cart.\n", quantity, book.Title)
	s.cartBadge(ctx)
	return nil
}
