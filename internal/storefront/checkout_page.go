package storefront

import (
	"context"
	"errors"
	"fmt"

	"bookshelf.dev/storefront/pkg/checkout"
)

// Checkout shows the order summary and, when a form is given, places the order.
// An empty cart sends the shopper back to the cart page.
func (s *Storefront) Checkout(ctx context.Context, form *checkout.Form) error {
	summary, err := s.checkout.Summary(ctx)
	if errors.Is(err, checkout.ErrEmptyCart) {
		s.printf("Your cart is empty. Add some books before checking out.\n")
		return err
	}
	if err != nil {
		return err
	}

	s.printf("Order Summary\n\n")
	w := s.table()
	for _, item := range summary.Items {
		fmt.Fprintf(w, "%s x %d\t%s\n", item.Title, item.Quantity, Money(item.LineTotal()))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	s.printf("\n")
	if err := s.summary(summary.Totals); err != nil {
		return err
	}

	if form == nil {
		if saved, err := s.checkout.SavedShippingInfo(ctx); err == nil && saved != nil {
			s.printf("\nShip to: %s, %s, %s, %s %s\n", saved.FullName(), saved.Address, saved.City, saved.State, saved.ZipCode)
		}
		return nil
	}

	confirmation, err := s.checkout.PlaceOrder(ctx, *form)
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		s.printf("\n%s\n", verr.Error())
		for _, fieldErr := range verr.Errors {
			s.printf("  %s: %s\n", fieldErr.Field, fieldErr.Message)
		}
		return err
	}
	if err != nil {
		s.printf("\nThere was an error processing your order. Please try again.\n")
		return err
	}

	s.printf("\nOrder placed successfully!\nOrder ID: %s\n", confirmation.OrderID)
	return nil
}

// SavedShippingInfo loads the contact saved by an earlier order so the form can be prefilled.
func (s *Storefront) SavedShippingInfo(ctx context.Context) (*checkout.Form, error) {
	saved, err := s.checkout.SavedShippingInfo(ctx)
	if err != nil || saved == nil {
		return nil, err
	}
	return &checkout.Form{
		FirstName: saved.FirstName,
		LastName:  saved.LastName,
		Email:     saved.Email,
		Phone:     saved.Phone,
		Address:   saved.Address,
		City:      saved.City,
		State:     saved.State,
		ZipCode:   saved.ZipCode,
	}, nil
}
