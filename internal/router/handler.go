package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf.dev/storefront/pkg/ai"
	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/global"
	"bookshelf.dev/storefront/pkg/models"
)

const LivenessMessage = "BookShelf API is running!"

type Handler struct {
	deps Deps
}

func (h *Handler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, LivenessMessage)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	status := map[string]string{"status": "OK"}

	for _, check := range []struct {
		field   string
		backend Backend
	}{
		{"catalog", h.deps.CatalogBackend},
		{"cart_store", h.deps.CartBackend},
	} {
		field, backend := check.field, check.backend
		if backend.Ping != nil {
			if err := backend.Ping(c.Request.Context()); err != nil {
				log.Printf("Health check failed for %s (%s): %v", field, backend.Name, err)
				c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Dependency unavailable", []global.ValidationError{
					{Field: field, Message: backend.Name + " is not reachable", Code: "unavailable"},
				}))
				return
			}
		}
		status[field] = backend.Name
	}

	c.JSON(http.StatusOK, global.SuccessResponse(status))
}

// GetBooks never rejects a query: malformed numbers fall back to their defaults.
func (h *Handler) GetBooks(c *gin.Context) {
	query := catalog.ParseQuery(c.Request.URL.Query())

	page, err := h.deps.Catalog.ListBooks(c.Request.Context(), query)
	if err != nil {
		log.Printf("Error listing books: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorBody{Error: "Failed to load books"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetFeaturedBooks(c *gin.Context) {
	books, err := h.deps.Catalog.FeaturedBooks(c.Request.Context())
	if err != nil {
		log.Printf("Error loading featured books: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorBody{Error: "Failed to load featured books"})
		return
	}

	c.JSON(http.StatusOK, books)
}

// lookupBook writes the error response itself and returns nil when the book cannot be served.
func (h *Handler) lookupBook(c *gin.Context) *models.Book {
	book, err := h.deps.Catalog.GetBook(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, global.ErrorBody{Error: "Book not found"})
		return nil
	}
	if err != nil {
		log.Printf("Error fetching book %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, global.ErrorBody{Error: "Failed to load book"})
		return nil
	}
	return book
}

func (h *Handler) GetBookByID(c *gin.Context) {
	if book := h.lookupBook(c); book != nil {
		c.JSON(http.StatusOK, book)
	}
}

func (h *Handler) GetBookInsights(c *gin.Context) {
	book := h.lookupBook(c)
	if book == nil {
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(ai.GenerateBookInsights(c.Request.Context(), book)))
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.deps.Catalog.Categories(c.Request.Context())
	if err != nil {
		log.Printf("Error loading categories: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorBody{Error: "Failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// maxOrderBytes caps the order document read by CreateOrder.
const maxOrderBytes = 1 << 20

// CreateOrder accepts any JSON document and answers with a fresh order id. Nothing is stored.
func (h *Handler) CreateOrder(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxOrderBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, global.ErrorResponse("Request body too large", []global.ValidationError{
			{Field: "body", Message: fmt.Sprintf("Request body must not exceed %d bytes", maxOrderBytes), Code: "body_too_large"},
		}))
		return
	}
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: "Request body must be a JSON document", Code: "json_parse_error"},
		}))
		return
	}

	c.JSON(http.StatusOK, models.OrderConfirmation{
		Success: true,
		OrderID: models.GenerateOrderID(time.Now()),
		Message: models.OrderPlacedMessage,
	})
}
