package mongo

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"bookshelf.dev/storefront/pkg/models"
)

type bookDocument struct {
	ID              string          `bson:"_id"`
	Seq             int             `bson:"seq"`
	Title           string          `bson:"title"`
	Author          string          `bson:"author"`
	Price           bson.Decimal128 `bson:"price"`
	Cover           string          `bson:"cover"`
	Category        string          `bson:"category"`
	Rating          float64         `bson:"rating"`
	Description     string          `bson:"description,omitempty"`
	ISBN            string          `bson:"isbn,omitempty"`
	Publisher       string          `bson:"publisher,omitempty"`
	PublicationDate string          `bson:"publication_date,omitempty"`
	Language        string          `bson:"language,omitempty"`
	Pages           int             `bson:"pages,omitempty"`
	Availability    string          `bson:"availability,omitempty"`
	Featured        bool            `bson:"featured"`
}

type categoryDocument struct {
	ID    string `bson:"_id"`
	Seq   int    `bson:"seq"`
	Name  string `bson:"name"`
	Count int    `bson:"count"`
}

func newBookDocument(seq int, book models.Book, featured bool) (bookDocument, error) {
	price, err := bson.ParseDecimal128(book.Price.String())
	if err != nil {
		return bookDocument{}, fmt.Errorf("book %s has unstorable price %s: %w", book.ID, book.Price, err)
	}

	return bookDocument{
		ID:              book.ID,
		Seq:             seq,
		Title:           book.Title,
		Author:          book.Author,
		Price:           price,
		Cover:           book.Cover,
		Category:        book.Category,
		Rating:          book.Rating,
		Description:     book.Description,
		ISBN:            book.ISBN,
		Publisher:       book.Publisher,
		PublicationDate: book.PublicationDate,
		Language:        book.Language,
		Pages:           book.Pages,
		Availability:    book.Availability,
		Featured:        featured,
	}, nil
}

func (d bookDocument) toBook() (models.Book, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return models.Book{}, fmt.Errorf("book %s has invalid price %s: %w", d.ID, d.Price, err)
	}

	return models.Book{
		ID:              d.ID,
		Title:           d.Title,
		Author:          d.Author,
		Price:           price,
		Cover:           d.Cover,
		Category:        d.Category,
		Rating:          d.Rating,
		Description:     d.Description,
		ISBN:            d.ISBN,
		Publisher:       d.Publisher,
		PublicationDate: d.PublicationDate,
		Language:        d.Language,
		Pages:           d.Pages,
		Availability:    d.Availability,
	}, nil
}

// BookStore is a catalog source backed by the books and categories collections. Books are
// returned in seq order, which is the order they were seeded in.
type BookStore struct {
	books      *mongo.Collection
	categories *mongo.Collection
}

func NewBookStore(db *mongo.Database) *BookStore {
	return &BookStore{
		books:      db.Collection(BooksCollection),
		categories: db.Collection(CategoriesCollection),
	}
}

var bySeq = options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

func (s *BookStore) Books(ctx context.Context) ([]models.Book, error) {
	return s.findBooks(ctx, bson.D{})
}

func (s *BookStore) Featured(ctx context.Context) ([]models.Book, error) {
	return s.findBooks(ctx, bson.D{{Key: "featured", Value: true}})
}

func (s *BookStore) findBooks(ctx context.Context, filter bson.D) ([]models.Book, error) {
	cursor, err := s.books.Find(ctx, filter, bySeq)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	books := make([]models.Book, 0, len(docs))
	for _, doc := range docs {
		book, err := doc.toBook()
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

func (s *BookStore) Categories(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.categories.Find(ctx, bson.D{}, bySeq)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, models.Category{ID: doc.ID, Name: doc.Name, Count: doc.Count})
	}
	return categories, nil
}

// SeedIfEmpty writes the given catalog when the books collection has no documents yet.
// It reports whether anything was written.
func (s *BookStore) SeedIfEmpty(ctx context.Context, books []models.Book, featuredIDs []string, categories []models.Category) (bool, error) {
	count, err := s.books.CountDocuments(ctx, bson.D{})
	if err != nil {
		return false, fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		log.Printf("Books collection already holds %d documents, skipping seed", count)
		return false, nil
	}

	if err := s.Seed(ctx, books, featuredIDs, categories); err != nil {
		return false, err
	}
	return true, nil
}

// Seed upserts every book and category by id.
func (s *BookStore) Seed(ctx context.Context, books []models.Book, featuredIDs []string, categories []models.Category) error {
	featured := make(map[string]bool, len(featuredIDs))
	for _, id := range featuredIDs {
		featured[id] = true
	}

	bookWrites := make([]mongo.WriteModel, 0, len(books))
	for i, book := range books {
		doc, err := newBookDocument(i+1, book, featured[book.ID])
		if err != nil {
			return err
		}
		bookWrites = append(bookWrites, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: doc.ID}}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	categoryWrites := make([]mongo.WriteModel, 0, len(categories))
	for i, category := range categories {
		doc := categoryDocument{ID: category.ID, Seq: i + 1, Name: category.Name, Count: category.Count}
		categoryWrites = append(categoryWrites, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: doc.ID}}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if len(bookWrites) > 0 {
		if _, err := s.books.BulkWrite(ctx, bookWrites); err != nil {
			return fmt.Errorf("failed to seed books: %w", err)
		}
	}
	if len(categoryWrites) > 0 {
		if _, err := s.categories.BulkWrite(ctx, categoryWrites); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
	}

	log.Printf("Seeded %d books and %d categories", len(books), len(categories))
	return nil
}
