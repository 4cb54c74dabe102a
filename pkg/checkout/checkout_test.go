package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/models"
)

type fakeSubmitter struct {
	submitFunc func(ctx context.Context, order *models.Order) (*models.OrderConfirmation, error)
	orders     []*models.Order
}

func (f *fakeSubmitter) SubmitOrder(ctx context.Context, order *models.Order) (*models.OrderConfirmation, error) {
	f.orders = append(f.orders, order)
	if f.submitFunc != nil {
		return f.submitFunc(ctx, order)
	}
	return &models.OrderConfirmation{Success: true, OrderID: "ORD-1-1234", Message: models.OrderPlacedMessage}, nil
}

func validForm() Form {
	return Form{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Phone:         "555-0100",
		Address:       "12 Analytical Way",
		City:          "London",
		State:         "LDN",
		ZipCode:       "10001",
		PaymentMethod: models.PaymentCreditCard,
		CardName:      "Ada Lovelace",
		CardNumber:    "4111 1111 1111 1111",
		Expiration:    "08/27",
		CVV:           "123",
	}
}

func newCheckout(t *testing.T, submitter *fakeSubmitter) (*Service, *cart.MemoryStore) {
	t.Helper()
	store := cart.NewMemoryStore()
	_, err := cart.NewEngine(store).AddItem(t.Context(), models.Book{ID: "1", Title: "1984", Price: decimal.RequireFromString("10.99")}, 2)
	require.NoError(t, err)

	svc := NewService(store, submitter)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600)) }
	return svc, store
}

func TestPlaceOrder(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc, store := newCheckout(t, submitter)

	confirmation, err := svc.PlaceOrder(t.Context(), validForm())
	require.NoError(t, err)
	assert.Equal(t, "ORD-1-1234", confirmation.OrderID)

	require.Len(t, submitter.orders, 1)
	order := submitter.orders[0]
	assert.Equal(t, "Ada Lovelace", order.Customer.FullName())
	assert.Equal(t, 2, order.GetItemCount())
	assert.Equal(t, "27.97", order.Totals.Total.StringFixed(2))
	assert.Equal(t, models.PaymentCreditCard, order.PaymentMethod)
	assert.Equal(t, time.UTC, order.OrderDate.Location())

	items, err := cart.NewEngine(store).Items(t.Context())
	require.NoError(t, err)
	assert.Empty(t, items)

	saved, err := svc.SavedShippingInfo(t.Context())
	require.NoError(t, err)
	assert.Nil(t, saved, "shipping info is only saved on request")
}

func TestPlaceOrderSavesShippingInfo(t *testing.T) {
	svc, _ := newCheckout(t, &fakeSubmitter{})

	form := validForm()
	form.SaveInfo = true
	_, err := svc.PlaceOrder(t.Context(), form)
	require.NoError(t, err)

	saved, err := svc.SavedShippingInfo(t.Context())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "ada@example.com", saved.Email)
	assert.Equal(t, "10001", saved.ZipCode)
}

func TestPlaceOrderWithEmptyCart(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc := NewService(cart.NewMemoryStore(), submitter)

	_, err := svc.PlaceOrder(t.Context(), validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, submitter.orders)
}

func TestRejectedOrderKeepsCart(t *testing.T) {
	submitter := &fakeSubmitter{submitFunc: func(ctx context.Context, order *models.Order) (*models.OrderConfirmation, error) {
		return &models.OrderConfirmation{Success: false}, nil
	}}
	svc, store := newCheckout(t, submitter)

	_, err := svc.PlaceOrder(t.Context(), validForm())
	assert.ErrorIs(t, err, ErrOrderRejected)

	total, err := cart.NewEngine(store).TotalItems(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestSubmitErrorKeepsCart(t *testing.T) {
	boom := errors.New("boom")
	submitter := &fakeSubmitter{submitFunc: func(ctx context.Context, order *models.Order) (*models.OrderConfirmation, error) {
		return nil, boom
	}}
	svc, store := newCheckout(t, submitter)

	_, err := svc.PlaceOrder(t.Context(), validForm())
	assert.ErrorIs(t, err, boom)

	items, err := cart.NewEngine(store).Items(t.Context())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestInvalidFormIsNotSubmitted(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc, _ := newCheckout(t, submitter)

	form := validForm()
	form.Email = "not-an-email"
	_, err := svc.PlaceOrder(t.Context(), form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, submitter.orders)
}

func TestSummary(t *testing.T) {
	svc, _ := newCheckout(t, &fakeSubmitter{})

	summary, err := svc.Summary(t.Context())
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
	assert.Equal(t, "21.98", summary.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "5.99", summary.Totals.Shipping.StringFixed(2))
}
