package models

import "github.com/shopspring/decimal"

// Cart models for the persisted key-value cart state

// CartItem is a line item with a snapshot of the book taken when it was first added.
type CartItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Cover    string          `json:"cover"`
	Quantity int             `json:"quantity"`
}

func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

func NewCartItem(book Book, quantity int) CartItem {
	return CartItem{
		ID:       book.ID,
		Title:    book.Title,
		Author:   book.Author,
		Price:    book.Price,
		Cover:    book.Cover,
		Quantity: quantity,
	}
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountShipping   DiscountType = "shipping"
)

// Discount is a percentage applied either to the subtotal or to the shipping cost.
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type Promo struct {
	Code     string   `json:"code"`
	Discount Discount `json:"discount"`
}

type PromoResult struct {
	Success  bool      `json:"success"`
	Discount *Discount `json:"discount,omitempty"`
	Message  string    `json:"message,omitempty"`
}

type OrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// CartView is the cart as returned by the session cart endpoints.
type CartView struct {
	SessionID  string      `json:"sessionId"`
	Items      []CartItem  `json:"items"`
	TotalItems int         `json:"totalItems"`
	Promo      *Promo      `json:"promo,omitempty"`
	Totals     OrderTotals `json:"totals"`
}

type AddToCartRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}
