package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/global"
	"bookshelf.dev/storefront/pkg/models"
)

func (h *Handler) CreateCartSession(c *gin.Context) {
	sessionID := uuid.NewString()

	if err := h.deps.Sessions.Create(c.Request.Context(), sessionID); err != nil {
		log.Printf("Error creating cart session: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create cart session", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]string{"sessionId": sessionID}))
}

func sessionCart(c *gin.Context) (*cart.Engine, string) {
	return c.MustGet(cartKey).(*cart.Engine), c.GetString(sessionIDKey)
}

// shippingCost reads ?shipping=, falling back to the default rate when absent or malformed.
func shippingCost(c *gin.Context) decimal.Decimal {
	raw := c.Query("shipping")
	if raw == "" {
		return cart.DefaultShipping
	}
	shipping, err := decimal.NewFromString(raw)
	if err != nil || shipping.IsNegative() {
		return cart.DefaultShipping
	}
	return shipping
}

func respondCart(c *gin.Context, status int) {
	engine, sessionID := sessionCart(c)

	view, err := engine.View(c.Request.Context(), sessionID, shippingCost(c))
	if err != nil {
		cartFailure(c, "Failed to load cart", err)
		return
	}

	c.JSON(status, global.SuccessResponse(view))
}

func cartFailure(c *gin.Context, message string, err error) {
	log.Printf("Cart session %s: %s: %v", c.GetString(sessionIDKey), message, err)
	c.JSON(http.StatusInternalServerError, global.ErrorResponse(message, nil))
}

func (h *Handler) GetCart(c *gin.Context) {
	respondCart(c, http.StatusOK)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "bookId", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	book, err := h.deps.Catalog.GetBook(c.Request.Context(), req.BookID)
	if errors.Is(err, catalog.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Book not found", []global.ValidationError{
			{Field: "bookId", Message: "No book exists with this ID", Code: "not_found"},
		}))
		return
	}
	if err != nil {
		cartFailure(c, "Failed to load book", err)
		return
	}

	engine, _ := sessionCart(c)
	if _, err := engine.AddItem(c.Request.Context(), *book, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid quantity", []global.ValidationError{
				{Field: "quantity", Message: "Quantity must be at least 1", Code: "invalid_quantity"},
			}))
			return
		}
		cartFailure(c, "Failed to add item to cart", err)
		return
	}

	respondCart(c, http.StatusOK)
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "quantity", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	engine, _ := sessionCart(c)
	if _, err := engine.UpdateQuantity(c.Request.Context(), c.Param("bookId"), *req.Quantity); err != nil {
		cartFailure(c, "Failed to update cart item", err)
		return
	}

	respondCart(c, http.StatusOK)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	engine, _ := sessionCart(c)
	if _, err := engine.RemoveItem(c.Request.Context(), c.Param("bookId")); err != nil {
		cartFailure(c, "Failed to remove cart item", err)
		return
	}

	respondCart(c, http.StatusOK)
}

func (h *Handler) ClearCart(c *gin.Context) {
	engine, _ := sessionCart(c)
	if _, err := engine.Clear(c.Request.Context()); err != nil {
		cartFailure(c, "Failed to clear cart", err)
		return
	}

	respondCart(c, http.StatusOK)
}

func (h *Handler) ApplyPromo(c *gin.Context) {
	var req models.ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "code", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	engine, _ := sessionCart(c)
	result, err := engine.ApplyPromoCode(c.Request.Context(), req.Code)
	if err != nil {
		cartFailure(c, "Failed to apply promo code", err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(result.Message, []global.ValidationError{
			{Field: "code", Message: result.Message, Code: "invalid_promo"},
		}))
		return
	}

	respondCart(c, http.StatusOK)
}

func (h *Handler) RemovePromo(c *gin.Context) {
	engine, _ := sessionCart(c)
	if err := engine.RemovePromo(c.Request.Context()); err != nil {
		cartFailure(c, "Failed to remove promo code", err)
		return
	}

	respondCart(c, http.StatusOK)
}
