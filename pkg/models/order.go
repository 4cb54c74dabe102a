package models

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	PaymentCreditCard = "credit_card"
	PaymentPayPal     = "paypal"
)

const OrderPlacedMessage = "Order placed successfully"

// Customer holds the shipping contact captured by the checkout form
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Order is the transient payload submitted at checkout; the server never stores it.
type Order struct {
	Customer      Customer    `json:"customer"`
	Items         []CartItem  `json:"items"`
	Totals        OrderTotals `json:"totals"`
	PaymentMethod string      `json:"paymentMethod"`
	OrderDate     time.Time   `json:"orderDate"`
}

// GetItemCount returns the total number of units in the order
func (o *Order) GetItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

type OrderConfirmation struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// GenerateOrderID fabricates a confirmation id. Format: ORD-<unix seconds>-<1000..9999>
func GenerateOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%d", now.Unix(), 1000+rand.IntN(9000))
}
