package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"bookshelf.dev/storefront/pkg/models"
)

const (
	CartKey  = "bookshelf_cart"
	PromoKey = "bookshelf_promo"
)

var DefaultShipping = decimal.RequireFromString("5.99")

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Engine owns the cart line items and the active promo code. It holds no state of its own:
// every call reads the store and every mutation writes back before returning.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) Items(ctx context.Context) ([]models.CartItem, error) {
	data, err := e.store.Get(ctx, CartKey)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	items := []models.CartItem{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (e *Engine) save(ctx context.Context, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := e.store.Set(ctx, CartKey, data); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}

// AddItem adds quantity copies of book, merging into an existing line for the same id.
func (e *Engine) AddItem(ctx context.Context, book models.Book, quantity int) ([]models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	items, err := e.Items(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOf(items, book.ID); i >= 0 {
		items[i].Quantity += quantity
	} else {
		items = append(items, models.NewCartItem(book, quantity))
	}

	if err := e.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it; unknown ids are ignored.
func (e *Engine) UpdateQuantity(ctx context.Context, bookID string, quantity int) ([]models.CartItem, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(items, bookID)
	if i < 0 {
		return items, nil
	}
	if quantity <= 0 {
		return e.RemoveItem(ctx, bookID)
	}

	items[i].Quantity = quantity
	if err := e.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (e *Engine) RemoveItem(ctx context.Context, bookID string) ([]models.CartItem, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return nil, err
	}

	items = slices.DeleteFunc(items, func(item models.CartItem) bool {
		return item.ID == bookID
	})

	if err := e.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear empties the cart. The active promo is left in place.
func (e *Engine) Clear(ctx context.Context) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := e.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (e *Engine) TotalItems(ctx context.Context) (int, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return 0, err
	}
	return countItems(items), nil
}

func (e *Engine) Subtotal(ctx context.Context) (decimal.Decimal, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return subtotal(items), nil
}

// ApplyPromoCode replaces the active promo when code is valid. An invalid code is reported
// in the result and leaves the stored state alone.
func (e *Engine) ApplyPromoCode(ctx context.Context, code string) (models.PromoResult, error) {
	discount, ok := LookupPromo(code)
	if !ok {
		return models.PromoResult{Success: false, Message: InvalidPromoMessage}, nil
	}

	data, err := json.Marshal(models.Promo{Code: code, Discount: discount})
	if err != nil {
		return models.PromoResult{}, fmt.Errorf("encode promo: %w", err)
	}
	if err := e.store.Set(ctx, PromoKey, data); err != nil {
		return models.PromoResult{}, fmt.Errorf("write promo: %w", err)
	}

	return models.PromoResult{Success: true, Discount: &discount}, nil
}

// ActivePromo returns nil when no promo has been applied.
func (e *Engine) ActivePromo(ctx context.Context) (*models.Promo, error) {
	data, err := e.store.Get(ctx, PromoKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read promo: %w", err)
	}

	var promo models.Promo
	if err := json.Unmarshal(data, &promo); err != nil {
		return nil, fmt.Errorf("decode promo: %w", err)
	}
	return &promo, nil
}

func (e *Engine) RemovePromo(ctx context.Context) error {
	if err := e.store.Delete(ctx, PromoKey); err != nil {
		return fmt.Errorf("delete promo: %w", err)
	}
	return nil
}

// OrderTotal prices the cart with the given shipping cost; callers normally pass DefaultShipping.
func (e *Engine) OrderTotal(ctx context.Context, shipping decimal.Decimal) (models.OrderTotals, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return models.OrderTotals{}, err
	}
	promo, err := e.ActivePromo(ctx)
	if err != nil {
		return models.OrderTotals{}, err
	}
	return Totals(subtotal(items), shipping, promo), nil
}

// View collects the full cart state in one read of each key.
func (e *Engine) View(ctx context.Context, sessionID string, shipping decimal.Decimal) (models.CartView, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return models.CartView{}, err
	}
	promo, err := e.ActivePromo(ctx)
	if err != nil {
		return models.CartView{}, err
	}

	return models.CartView{
		SessionID:  sessionID,
		Items:      items,
		TotalItems: countItems(items),
		Promo:      promo,
		Totals:     Totals(subtotal(items), shipping, promo),
	}, nil
}

func indexOf(items []models.CartItem, bookID string) int {
	return slices.IndexFunc(items, func(item models.CartItem) bool {
		return item.ID == bookID
	})
}

func countItems(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func subtotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}
	return total
}
