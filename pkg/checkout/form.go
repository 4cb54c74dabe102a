package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookshelf.dev/storefront/pkg/global"
	"bookshelf.dev/storefront/pkg/models"
)

// Form is the checkout form. Card fields are only checked when paying by credit card.
type Form struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`

	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=credit_card paypal"`
	CardName      string `json:"cardName"`
	CardNumber    string `json:"cardNumber"`
	Expiration    string `json:"expiration"`
	CVV           string `json:"cvv"`

	SaveInfo bool `json:"saveInfo"`
}

func (f *Form) Customer() models.Customer {
	return models.Customer{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		City:      f.City,
		State:     f.State,
		ZipCode:   f.ZipCode,
	}
}

// Normalize trims every text field and strips spaces from the card number.
func (f *Form) Normalize() {
	for _, field := range []*string{
		&f.FirstName, &f.LastName, &f.Email, &f.Phone, &f.Address, &f.City, &f.State, &f.ZipCode,
		&f.PaymentMethod, &f.CardName, &f.Expiration, &f.CVV,
	} {
		*field = strings.TrimSpace(*field)
	}
	f.CardNumber = strings.Join(strings.Fields(f.CardNumber), "")
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	expirationPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateCard, Form{})
	return v
}

func validateCard(sl validator.StructLevel) {
	form := sl.Current().Interface().(Form)
	if form.PaymentMethod != models.PaymentCreditCard {
		return
	}

	check := func(value, json, field string, pattern *regexp.Regexp, tag string) {
		switch {
		case value == "":
			sl.ReportError(value, json, field, "required", "")
		case pattern != nil && !pattern.MatchString(value):
			sl.ReportError(value, json, field, tag, "")
		}
	}

	check(form.CardName, "cardName", "CardName", nil, "")
	check(form.CardNumber, "cardNumber", "CardNumber", cardNumberPattern, "card_number")
	check(form.Expiration, "expiration", "Expiration", expirationPattern, "expiration")
	check(form.CVV, "cvv", "CVV", cvvPattern, "cvv")
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Errors []global.ValidationError
}

func (e *ValidationError) Error() string {
	return "Please fill in all required fields correctly."
}

// Validate normalizes the form and returns a *ValidationError when any field is invalid.
func (f *Form) Validate() error {
	f.Normalize()

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range fieldErrors {
		out.Errors = append(out.Errors, global.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please enter a valid email address"
	case "oneof":
		return "Payment method must be credit_card or paypal"
	case "card_number":
		return "Card number must be 13 to 19 digits"
	case "expiration":
		return "Expiration date must be in MM/YY format"
	case "cvv":
		return "CVV must be 3 or 4 digits"
	default:
		return fe.Field() + " is invalid"
	}
}
