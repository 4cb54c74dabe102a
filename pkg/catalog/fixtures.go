package catalog

import (
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"bookshelf.dev/storefront/pkg/models"
)

// categoryNames drives both the category list and the id-based category assignment.
var categoryNames = []string{
	"Fiction", "Science Fiction", "Mystery", "Romance",
	"Biography", "Self-Help", "History", "Fantasy",
}

var categoryCounts = []int{25, 18, 15, 12, 10, 8, 14, 20}

// DefaultCategories returns the fixed category list with its advertised counts.
func DefaultCategories() []models.Category {
	categories := make([]models.Category, len(categoryNames))
	for i, name := range categoryNames {
		categories[i] = models.Category{
			ID:    fmt.Sprint(i + 1),
			Name:  name,
			Count: categoryCounts[i],
		}
	}
	return categories
}

// SeedBooks returns the four hand-written titles that open every catalog and make up the
// featured list.
func SeedBooks() []models.Book {
	return []models.Book{
		{
			ID:              "1",
			Title:           "To Kill a Mockingbird",
			Author:          "Harper Lee",
			Price:           decimal.RequireFromString("12.99"),
			Cover:           "https://source.unsplash.com/random/800x1200?book",
			Category:        "Fiction",
			Rating:          4.8,
			Description:     `The unforgettable novel of a childhood in a sleepy Southern town and the crisis of conscience that rocked it. "To Kill A Mockingbird" became both an instant bestseller and a critical success when it was first published in 1960.`,
			ISBN:            "978-0-06-112008-4",
			Publisher:       "HarperCollins",
			PublicationDate: "1960-07-11",
			Language:        "English",
			Pages:           336,
			Availability:    models.AvailabilityInStock,
		},
		{
			ID:              "2",
			Title:           "1984",
			Author:          "George Orwell",
			Price:           decimal.RequireFromString("10.99"),
			Cover:           "https://source.unsplash.com/random/800x1200?novel",
			Category:        "Science Fiction",
			Rating:          4.7,
			Description:     "Among the seminal texts of the 20th century, Nineteen Eighty-Four is a rare work that grows more haunting as its futuristic purgatory becomes more real.",
			ISBN:            "978-0-452-28423-4",
			Publisher:       "Penguin Books",
			PublicationDate: "1949-06-08",
			Language:        "English",
			Pages:           328,
			Availability:    models.AvailabilityInStock,
		},
		{
			ID:              "3",
			Title:           "The Great Gatsby",
			Author:          "F. Scott Fitzgerald",
			Price:           decimal.RequireFromString("9.99"),
			Cover:           "https://source.unsplash.com/random/800x1200?novel,classic",
			Category:        "Classic",
			Rating:          4.5,
			Description:     "The Great Gatsby, F. Scott Fitzgerald's third book, stands as the supreme achievement of his career. This exemplary novel of the Jazz Age has been acclaimed by generations of readers.",
			ISBN:            "978-0-7432-7356-5",
			Publisher:       "Scribner",
			PublicationDate: "1925-04-10",
			Language:        "English",
			Pages:           180,
			Availability:    models.AvailabilityInStock,
		},
		{
			ID:              "4",
			Title:           "Pride and Prejudice",
			Author:          "Jane Austen",
			Price:           decimal.RequireFromString("8.99"),
			Cover:           "https://source.unsplash.com/random/800x1200?romance",
			Category:        "Romance",
			Rating:          4.6,
			Description:     "One of the most popular novels in English literature, Jane Austen's Pride and Prejudice has charmed readers since its publication with the story of the witty Elizabeth Bennet and her prideful suitor, Mr. Darcy.",
			ISBN:            "978-0-14-143951-8",
			Publisher:       "Penguin Classics",
			PublicationDate: "1813-01-28",
			Language:        "English",
			Pages:           432,
			Availability:    models.AvailabilityInStock,
		},
	}
}

// Rand is the subset of *rand.Rand the generator needs.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the process-wide math/rand/v2 source.
var DefaultRand Rand = globalRand{}

// GenerateBooks returns the seed books followed by templated books with ids 5..count.
func GenerateBooks(count int, r Rand) []models.Book {
	books := SeedBooks()
	for i := len(books) + 1; i <= count; i++ {
		books = append(books, GenerateBook(i, r))
	}
	return books
}

var priceCents = decimal.New(99, -2)

// Generated ratings fall in 3.0..3.9.
const ratingBase = 30

// GenerateBook builds the synthetic book with the given numeric id.
func GenerateBook(i int, r Rand) models.Book {
	return models.Book{
		ID:              fmt.Sprint(i),
		Title:           fmt.Sprintf("Book Title %d", i),
		Author:          fmt.Sprintf("Author %d", i/3+1),
		Price:           decimal.NewFromInt(int64(r.IntN(30) + 5)).Add(priceCents),
		Cover:           fmt.Sprintf("https://source.unsplash.com/random/800x1200?book,%d", i),
		Category:        categoryNames[i%len(categoryNames)],
		Rating:          float64(r.IntN(10)+ratingBase) / 10,
		Description:     fmt.Sprintf("This is a sample description for Book %d. It contains information about the plot, characters, and themes of the book.", i),
		ISBN:            fmt.Sprintf("978-1-23456-%03d-0", i),
		Publisher:       "BookShelf Publishing",
		PublicationDate: "2023-01-15",
		Language:        "English",
		Pages:           300 + r.IntN(200),
		Availability:    models.AvailabilityInStock,
	}
}
