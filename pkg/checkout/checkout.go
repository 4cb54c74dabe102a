package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/models"
)

const ShippingInfoKey = "bookshelf_shipping_info"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderRejected = errors.New("order was not accepted")
)

// OrderSubmitter sends an order to the order intake endpoint.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order *models.Order) (*models.OrderConfirmation, error)
}

type Summary struct {
	Items  []models.CartItem
	Totals models.OrderTotals
}

type Service struct {
	store    cart.Store
	cart     *cart.Engine
	orders   OrderSubmitter
	shipping decimal.Decimal
	now      func() time.Time
}

func NewService(store cart.Store, orders OrderSubmitter) *Service {
	return &Service{
		store:    store,
		cart:     cart.NewEngine(store),
		orders:   orders,
		shipping: cart.DefaultShipping,
		now:      time.Now,
	}
}

// Summary returns the items and totals to confirm, or ErrEmptyCart when there is nothing to buy.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals, err := s.cart.OrderTotal(ctx, s.shipping)
	if err != nil {
		return nil, err
	}
	return &Summary{Items: items, Totals: totals}, nil
}

// PlaceOrder validates the form, submits the order and clears the cart once the order is
// accepted. A rejected order leaves the cart as it was.
func (s *Service) PlaceOrder(ctx context.Context, form Form) (*models.OrderConfirmation, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	if err := form.Validate(); err != nil {
		return nil, err
	}

	order := &models.Order{
		Customer:      form.Customer(),
		Items:         summary.Items,
		Totals:        summary.Totals,
		PaymentMethod: form.PaymentMethod,
		OrderDate:     s.now().UTC(),
	}

	confirmation, err := s.orders.SubmitOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	if !confirmation.Success {
		return nil, ErrOrderRejected
	}

	if form.SaveInfo {
		if err := s.saveShippingInfo(ctx, order.Customer); err != nil {
			log.Printf("Warning: failed to save shipping info: %v", err)
		}
	}

	if _, err := s.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("order %s placed but cart not cleared: %w", confirmation.OrderID, err)
	}

	return confirmation, nil
}

func (s *Service) saveShippingInfo(ctx context.Context, customer models.Customer) error {
	data, err := json.Marshal(customer)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, ShippingInfoKey, data)
}

// SavedShippingInfo returns the contact saved by an earlier order, or nil.
func (s *Service) SavedShippingInfo(ctx context.Context) (*models.Customer, error) {
	data, err := s.store.Get(ctx, ShippingInfoKey)
	if errors.Is(err, cart.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return nil, fmt.Errorf("decode shipping info: %w", err)
	}
	return &customer, nil
}
