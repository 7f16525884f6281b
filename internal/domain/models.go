package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of the storefront cart
type CartItem struct {
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"` // major currency unit, e.g. dollars
	Quantity int64           `json:"quantity"`
}

// Subtotal is price × quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// CheckoutRequest is the payload for POST /create-checkout-session
type CheckoutRequest struct {
	Items              []CartItem `json:"items"`
	CustomerEmail      string     `json:"customerEmail"`
	SuccessURL         string     `json:"successUrl"`
	CancelURL          string     `json:"cancelUrl"`
	Currency           string     `json:"currency"`
	CurrencyMultiplier int64      `json:"currencyMultiplier"` // scale from major to minor units, typically 100
}

// CheckoutSession is what the payment gateway returns for a new session.
// ID and URL are never constructed locally.
type CheckoutSession struct {
	ID       string            `json:"id"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"-"`
}

// PaymentVerification is a read-only projection of a gateway session
type PaymentVerification struct {
	ID            string            `json:"id"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// ContactMessage is the payload for POST /api/contact
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ReceiptRequest is the payload for POST /send-receipt.
// Currency and Shipping are optional; when Shipping is absent it is derived
// from the currency's shipping rate.
type ReceiptRequest struct {
	CustomerEmail   string           `json:"customerEmail"`
	OrderID         string           `json:"orderId"`
	Items           []CartItem       `json:"items"`
	Total           decimal.Decimal  `json:"total"`
	CustomerName    string           `json:"customerName"`
	ShippingAddress string           `json:"shippingAddress"` // comma-delimited
	Currency        string           `json:"currency,omitempty"`
	Shipping        *decimal.Decimal `json:"shipping,omitempty"`
}

// Subtotal sums the per-item subtotals.
func (r ReceiptRequest) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range r.Items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
	EmailConfigured bool      `json:"emailConfigured"`
}

// SMTPSummary describes the relay configuration without secrets
type SMTPSummary struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Secure bool   `json:"secure"`
	User   string `json:"user"`
}
