package ai

import (
	"context"
	"time"

	"bookshelf.dev/storefront/pkg/models"
)

type BookInsights struct {
	BookID      string    `json:"bookId"`
	Notes       string    `json:"notes"`
	Summary     string    `json:"summary"`
	AIEnabled   bool      `json:"aiEnabled"`
	GeneratedAt time.Time `json:"generatedAt"`
	Error       string    `json:"error,omitempty"`
}

// GenerateBookInsights writes reading notes for a book. When the AI service is disabled or
// fails, the notes fall back to a sentence built from the catalog entry and no error is returned.
func GenerateBookInsights(ctx context.Context, book *models.Book) *BookInsights {
	insights := &BookInsights{
		BookID:      book.ID,
		Notes:       fallbackNote(book),
		Summary:     "Catalog summary (AI insights unavailable)",
		AIEnabled:   IsEnabled(),
		GeneratedAt: time.Now().UTC(),
	}

	if !IsEnabled() {
		return insights
	}

	notes, err := generateCompletion(ctx, BookInsightsSystemPrompt, formatBookPrompt(book))
	if err != nil {
		insights.Error = "AI analysis failed: " + err.Error()
		return insights
	}

	insights.Notes = notes
	insights.Summary = "AI-generated reading notes"
	return insights
}
