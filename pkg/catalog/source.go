package catalog

import (
	"context"
	"math/rand/v2"
	"slices"

	"bookshelf.dev/storefront/pkg/models"
)

// Source is the read-only catalog data provider behind the query pipeline.
// Books returns the full candidate set; callers may reorder the returned slice.
type Source interface {
	Books(ctx context.Context) ([]models.Book, error)
	Featured(ctx context.Context) ([]models.Book, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// GeneratedSource regenerates the whole catalog on every call, so prices and ratings of the
// generated books differ between requests. There is no cross-request state to share.
type GeneratedSource struct {
	count int
	rand  Rand
}

func NewGeneratedSource(count int) *GeneratedSource {
	return &GeneratedSource{count: count, rand: globalRand{}}
}

func (s *GeneratedSource) Books(ctx context.Context) ([]models.Book, error) {
	return GenerateBooks(s.count, s.rand), nil
}

func (s *GeneratedSource) Featured(ctx context.Context) ([]models.Book, error) {
	return SeedBooks(), nil
}

func (s *GeneratedSource) Categories(ctx context.Context) ([]models.Category, error) {
	return DefaultCategories(), nil
}

// SeededSource is a fixture table generated once from a seed. Ids, prices and ratings stay
// stable for the life of the process, and equal seeds produce equal tables.
type SeededSource struct {
	books []models.Book
}

func NewSeededSource(count int, seed uint64) *SeededSource {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &SeededSource{books: GenerateBooks(count, r)}
}

func (s *SeededSource) Books(ctx context.Context) ([]models.Book, error) {
	return slices.Clone(s.books), nil
}

func (s *SeededSource) Featured(ctx context.Context) ([]models.Book, error) {
	return SeedBooks(), nil
}

func (s *SeededSource) Categories(ctx context.Context) ([]models.Category, error) {
	return DefaultCategories(), nil
}
