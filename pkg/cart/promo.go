package cart

import (
	"github.com/shopspring/decimal"

	"bookshelf.dev/storefront/pkg/models"
)

const InvalidPromoMessage = "Invalid promo code"

var promoCodes = map[string]models.Discount{
	"WELCOME10": {Type: models.DiscountPercentage, Value: decimal.NewFromInt(10)},
	"SAVE20":    {Type: models.DiscountPercentage, Value: decimal.NewFromInt(20)},
	"FREESHIP":  {Type: models.DiscountShipping, Value: decimal.NewFromInt(100)},
}

// LookupPromo matches codes exactly; "welcome10" is not a valid code.
func LookupPromo(code string) (models.Discount, bool) {
	discount, ok := promoCodes[code]
	return discount, ok
}

var hundred = decimal.NewFromInt(100)

// Totals prices a subtotal with an optional promo. A percentage promo only touches the
// subtotal and a shipping promo only touches shipping. Discount and shipping are rounded
// to cents.
func Totals(subtotal, shipping decimal.Decimal, promo *models.Promo) models.OrderTotals {
	discount := decimal.Zero

	if promo != nil {
		rate := promo.Discount.Value.Div(hundred)
		switch promo.Discount.Type {
		case models.DiscountPercentage:
			discount = subtotal.Mul(rate).Round(2)
		case models.DiscountShipping:
			shipping = shipping.Mul(decimal.NewFromInt(1).Sub(rate)).Round(2)
		}
	}

	return models.OrderTotals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(shipping),
	}
}
