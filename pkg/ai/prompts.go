package ai

import (
	"fmt"
	"strings"

	"bookshelf.dev/storefront/pkg/models"
)

const BookInsightsSystemPrompt = `You are a friendly bookseller writing short reading notes for an online bookstore.
Given a book's catalog entry, write:
- One sentence on who will enjoy it
- Two or three themes or reasons to read it
- A similar title the reader might like next
Keep it under 120 words. Do not invent prices, awards or sales figures.`

func formatBookPrompt(book *models.Book) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", book.Title)
	fmt.Fprintf(&b, "Author: %s\n", book.Author)
	fmt.Fprintf(&b, "Category: %s\n", book.Category)
	fmt.Fprintf(&b, "Rating: %.1f / 5\n", book.Rating)
	if book.PublicationDate != "" {
		fmt.Fprintf(&b, "Published: %s\n", book.PublicationDate)
	}
	if book.Pages > 0 {
		fmt.Fprintf(&b, "Pages: %d\n", book.Pages)
	}
	if book.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", book.Description)
	}
	return b.String()
}

// fallbackNote is shown when the AI service is unavailable.
func fallbackNote(book *models.Book) string {
	return fmt.Sprintf("%s by %s is a %s title rated %.1f out of 5 by our readers.",
		book.Title, book.Author, book.Category, book.Rating)
}
