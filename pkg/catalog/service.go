package catalog

import (
	"context"
	"errors"
	"fmt"

	"bookshelf.dev/storefront/pkg/models"
)

var ErrBookNotFound = errors.New("book not found")

// Service answers catalog requests from a Source. Every call reads a fresh candidate set,
// so with a GeneratedSource a listing and a later lookup may disagree on the same id.
type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

func (s *Service) ListBooks(ctx context.Context, q Query) (*models.BookPage, error) {
	books, err := s.source.Books(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	page := Run(books, q)
	return &page, nil
}

func (s *Service) GetBook(ctx context.Context, id string) (*models.Book, error) {
	books, err := s.source.Books(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, ErrBookNotFound
}

func (s *Service) FeaturedBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.source.Featured(ctx)
	if err != nil {
		return nil, fmt.Errorf("load featured books: %w", err)
	}
	return books, nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return categories, nil
}

// RelatedBooks returns up to limit books from the first listing page of the book's category,
// excluding the book itself.
func RelatedBooks(page *models.BookPage, book *models.Book, limit int) []models.Book {
	related := make([]models.Book, 0, limit)
	for _, candidate := range page.Books {
		if len(related) == limit {
			break
		}
		if candidate.ID == book.ID {
			continue
		}
		related = append(related, candidate)
	}
	return related
}
