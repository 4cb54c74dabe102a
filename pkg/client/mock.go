package client

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/models"
)

const (
	mockBookCount   = 50
	mockDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."
	mockOrderIDLen  = 8
	base36          = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Mock serves the offline data shown when the API cannot be reached. Its list has no seed
// books: ids 1..50 are all templated.
type Mock struct {
	rand catalog.Rand
}

func NewMock(r catalog.Rand) *Mock {
	return &Mock{rand: r}
}

func listing(book models.Book) models.Book {
	return models.Book{
		ID:       book.ID,
		Title:    book.Title,
		Author:   book.Author,
		Price:    book.Price,
		Cover:    book.Cover,
		Category: book.Category,
		Rating:   book.Rating,
	}
}

func (m *Mock) FeaturedBooks() []models.Book {
	seed := catalog.SeedBooks()
	books := make([]models.Book, len(seed))
	for i, book := range seed {
		books[i] = listing(book)
	}
	return books
}

func (m *Mock) allBooks() []models.Book {
	books := make([]models.Book, 0, mockBookCount)
	for i := 1; i <= mockBookCount; i++ {
		books = append(books, listing(catalog.GenerateBook(i, m.rand)))
	}
	return books
}

func (m *Mock) Books(q catalog.Query) models.BookPage {
	return catalog.Run(m.allBooks(), q)
}

// Book looks the id up on the first unfiltered page only; anything else gets a synthesized
// "Detailed Book" entry. Either way the detail fields are filled with placeholder text.
func (m *Mock) Book(id string) models.Book {
	page := m.Books(catalog.Query{Page: 1})

	book := models.Book{
		ID:       id,
		Title:    fmt.Sprintf("Detailed Book %s", id),
		Author:   fmt.Sprintf("Author Name for Book %s", id),
		Price:    decimal.RequireFromString("14.99"),
		Cover:    fmt.Sprintf("https://source.unsplash.com/random/800x1200?book,%s", id),
		Category: "Fiction",
		Rating:   4.5,
	}
	for _, candidate := range page.Books {
		if candidate.ID == id {
			book = candidate
			break
		}
	}

	book.Description = mockDescription
	book.ISBN = fmt.Sprintf("978-1-23456-%s-0", padID(id))
	book.Publisher = "BookShelf Publishing"
	book.PublicationDate = "2023-01-15"
	book.Language = "English"
	book.Pages = 320
	book.Availability = models.AvailabilityInStock
	return book
}

func (m *Mock) Categories() []models.Category {
	return catalog.DefaultCategories()
}

func (m *Mock) SubmitOrder() *models.OrderConfirmation {
	return &models.OrderConfirmation{
		Success: true,
		OrderID: m.orderID(),
		Message: models.OrderPlacedMessage + "!",
	}
}

// orderID is ORD- followed by 8 random base-36 characters.
func (m *Mock) orderID() string {
	var b strings.Builder
	b.WriteString("ORD-")
	for range mockOrderIDLen {
		b.WriteByte(base36[m.rand.IntN(len(base36))])
	}
	return b.String()
}

func padID(id string) string {
	if len(id) >= 3 {
		return id
	}
	return strings.Repeat("0", 3-len(id)) + id
}
