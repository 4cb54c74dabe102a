package storefront

import (
	"context"
	"fmt"
	"strings"

	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/models"
)

const (
	PromoAppliedMessage  = "Promo code applied successfully!"
	PromoRejectedMessage = "Invalid promo code. Please try again."
	PromoMissingMessage  = "Please enter a promo code."
)

// Cart shows the line items and the order summary.
func (s *Storefront) Cart(ctx context.Context) error {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		s.printf("Your cart is empty.\n")
		return nil
	}

	w := s.table()
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tQTY\tTOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", item.ID, item.Title, Money(item.Price), item.Quantity, Money(item.LineTotal()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	totals, err := s.cart.OrderTotal(ctx, cart.DefaultShipping)
	if err != nil {
		return err
	}
	promo, err := s.cart.ActivePromo(ctx)
	if err != nil {
		return err
	}

	s.printf("\n")
	if promo != nil {
		s.printf("Promo: %s\n", promo.Code)
	}
	return s.summary(totals)
}

// summary prints the totals block. The discount row only appears when something was taken off.
func (s *Storefront) summary(totals models.OrderTotals) error {
	w := s.table()
	fmt.Fprintf(w, "Subtotal\t%s\n", Money(totals.Subtotal))
	if totals.Discount.IsPositive() {
		fmt.Fprintf(w, "Discount\t-%s\n", Money(totals.Discount))
	}
	fmt.Fprintf(w, "Shipping\t%s\n", Money(totals.Shipping))
	fmt.Fprintf(w, "Total\t%s\n", Money(totals.Total))
	return w.Flush()
}

func (s *Storefront) lineQuantity(ctx context.Context, id string) (int, bool, error) {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return 0, false, err
	}
	for _, item := range items {
		if item.ID == id {
			return item.Quantity, true, nil
		}
	}
	return 0, false, nil
}

// Increase adds one to a line. Unknown ids are ignored.
func (s *Storefront) Increase(ctx context.Context, id string) error {
	return s.step(ctx, id, 1)
}

// Decrease takes one off a line; the line is removed when it reaches zero.
func (s *Storefront) Decrease(ctx context.Context, id string) error {
	return s.step(ctx, id, -1)
}

func (s *Storefront) step(ctx context.Context, id string, delta int) error {
	quantity, ok, err := s.lineQuantity(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		s.printf("Book %s is not in your cart.\n", id)
		return nil
	}

	if _, err := s.cart.UpdateQuantity(ctx, id, quantity+delta); err != nil {
		return err
	}
	return s.Cart(ctx)
}

func (s *Storefront) SetQuantity(ctx context.Context, id string, quantity int) error {
	if _, err := s.cart.UpdateQuantity(ctx, id, quantity); err != nil {
		return err
	}
	return s.Cart(ctx)
}

func (s *Storefront) Remove(ctx context.Context, id string) error {
	if _, err := s.cart.RemoveItem(ctx, id); err != nil {
		return err
	}
	s.printf("Item removed from cart.\n")
	return s.Cart(ctx)
}

func (s *Storefront) ClearCart(ctx context.Context) error {
	if _, err := s.cart.Clear(ctx); err != nil {
		return err
	}
	return s.Cart(ctx)
}

// ApplyPromo reports the outcome on the page; an unknown code is not an error.
func (s *Storefront) ApplyPromo(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		s.printf("%s\n", PromoMissingMessage)
		return nil
	}

	result, err := s.cart.ApplyPromoCode(ctx, code)
	if err != nil {
		return err
	}
	if !result.Success {
		s.printf("%s\n", PromoRejectedMessage)
		return nil
	}

	s.printf("%s\n\n", PromoAppliedMessage)
	return s.Cart(ctx)
}

func (s *Storefront) RemovePromo(ctx context.Context) error {
	if err := s.cart.RemovePromo(ctx); err != nil {
		return err
	}
	return s.Cart(ctx)
}
