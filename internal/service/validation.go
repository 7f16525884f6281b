package service

import (
	"regexp"
	"strings"

	"github.com/Timmydavid123/server/internal/domain"
	"github.com/Timmydavid123/server/internal/payments"
	"github.com/Timmydavid123/server/pkg/errors"
)

// emailPattern accepts local@domain.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation messages shown to the storefront user.
const (
	MsgContactFieldsRequired = "All fields are required"
	MsgInvalidEmail          = "Please provide a valid email address"
	MsgEmptyCart             = "Cart is empty"
	MsgInvalidItem           = "Each item needs a title, a price of at least 0 and a quantity of at least 1"
	MsgAmountTooLarge        = "Item price is too large"
	MsgRedirectURLsRequired  = "successUrl and cancelUrl are required"
	MsgOrderIDRequired       = "Order ID is required"
	MsgInvalidTotal          = "Order total must not be negative"
	MsgTotalMismatch         = "Order total does not match the items and shipping"
	MsgSessionIDRequired     = "Session ID is required"
)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeContact trims surrounding whitespace from every field.
func NormalizeContact(msg domain.ContactMessage) domain.ContactMessage {
	return domain.ContactMessage{
		Name:    strings.TrimSpace(msg.Name),
		Email:   strings.TrimSpace(msg.Email),
		Subject: strings.TrimSpace(msg.Subject),
		Message: strings.TrimSpace(msg.Message),
	}
}

// ValidateContact requires all four fields and a well-formed email.
func ValidateContact(msg domain.ContactMessage) error {
	fields := map[string]string{}
	for name, value := range map[string]string{
		"name":    msg.Name,
		"email":   msg.Email,
		"subject": msg.Subject,
		"message": msg.Message,
	} {
		if value == "" {
			fields[name] = "required"
		}
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: MsgContactFieldsRequired, Fields: fields}
	}
	if !ValidEmail(msg.Email) {
		return &errors.ErrValidation{Message: MsgInvalidEmail, Fields: map[string]string{"email": "invalid"}}
	}
	return nil
}

// ValidateItems enforces price ≥ 0 and quantity ≥ 1 on every line, and
// bounds each price once scaled by multiplier.
func ValidateItems(items []domain.CartItem, multiplier int64) error {
	if len(items) == 0 {
		return errors.Validation(MsgEmptyCart)
	}
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" || item.Price.IsNegative() || item.Quantity < 1 {
			return errors.Validation(MsgInvalidItem)
		}
		if payments.ExceedsMaxUnitAmount(item.Price, multiplier) {
			return &errors.ErrValidation{
				Message: MsgAmountTooLarge,
				Fields:  map[string]string{"price": item.Title},
			}
		}
	}
	return nil
}

// ValidateCheckout checks a checkout request before it reaches the gateway.
func ValidateCheckout(req domain.CheckoutRequest) error {
	if err := ValidateItems(req.Items, payments.NormalizeMultiplier(req.CurrencyMultiplier)); err != nil {
		return err
	}
	if strings.TrimSpace(req.SuccessURL) == "" || strings.TrimSpace(req.CancelURL) == "" {
		return errors.Validation(MsgRedirectURLsRequired)
	}
	if req.CustomerEmail != "" && !ValidEmail(req.CustomerEmail) {
		return errors.Validation(MsgInvalidEmail)
	}
	return nil
}

// ValidateReceipt checks the shape of a receipt request. The total is
// checked separately against the items.
func ValidateReceipt(req domain.ReceiptRequest) error {
	if !ValidEmail(strings.TrimSpace(req.CustomerEmail)) {
		return errors.Validation(MsgInvalidEmail)
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return errors.Validation(MsgOrderIDRequired)
	}
	if err := ValidateItems(req.Items, 1); err != nil {
		return err
	}
	if req.Total.IsNegative() || (req.Shipping != nil && req.Shipping.IsNegative()) {
		return errors.Validation(MsgInvalidTotal)
	}
	return nil
}
