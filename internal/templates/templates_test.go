package templates

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timmydavid123/server/internal/domain"
)

var fixedNow = time.Date(2026, time.March, 14, 15, 4, 0, 0, time.UTC)

func testReceipt() Receipt {
	return Receipt{
		Order: domain.ReceiptRequest{
			CustomerEmail:   "buyer@example.com",
			OrderID:         "ORD-1001",
			CustomerName:    "Ada Lovelace",
			ShippingAddress: "12 Analytical Way, London,  , NW1 6XE",
			Items: []domain.CartItem{
				{Title: "Painting A", Price: decimal.RequireFromString("100"), Quantity: 2},
				{Title: "Print <B>", Price: decimal.RequireFromString("19.99"), Quantity: 1},
			},
			Total: decimal.RequireFromString("229.99"),
		},
		Currency: domain.CurrencyUSD,
		Shipping: decimal.NewFromInt(10),
	}
}

func TestContactAdmin_EscapesUserInput(t *testing.T) {
	r := MustNew()
	msg := domain.ContactMessage{
		Name:    `<script>alert("x")</script>`,
		Email:   "visitor@example.org",
		Subject: "Hello <b>there</b>",
		Message: "Line one\n<img src=x onerror=alert(1)>",
	}

	email, err := r.ContactAdmin(msg, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "New contact form: Hello <b>there</b>", email.Subject)
	assert.NotContains(t, email.HTML, "<script>")
	assert.NotContains(t, email.HTML, "<img src=x")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
	assert.Contains(t, email.HTML, "Hello &lt;b&gt;there&lt;/b&gt;")
	assert.Contains(t, email.HTML, "March 14, 2026 at 3:04 PM UTC")

	// plain text keeps the literal values
	assert.Contains(t, email.Text, "<img src=x onerror=alert(1)>")
	assert.Contains(t, email.Text, "Email: visitor@example.org")
}

func TestContactAdmin_SubjectIsSingleLine(t *testing.T) {
	email, err := MustNew().ContactAdmin(domain.ContactMessage{Subject: "hi\r\nBcc: x@y.z"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "New contact form: hi Bcc: x@y.z", email.Subject)
}

func TestContactAcknowledgement(t *testing.T) {
	email, err := MustNew().ContactAcknowledgement(domain.ContactMessage{
		Name: "Ada", Email: "ada@example.com", Subject: "Commission", Message: "Do you ship abroad?",
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Thank you for contacting us", email.Subject)
	assert.Contains(t, email.HTML, "Thank you for reaching out, Ada!")
	assert.Contains(t, email.Text, "Do you ship abroad?")
}

func TestRendering_IsDeterministic(t *testing.T) {
	r := MustNew()
	msg := domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "s", Message: "m"}

	a, err := r.ContactAdmin(msg, fixedNow)
	require.NoError(t, err)
	b, err := r.ContactAdmin(msg, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	ra, err := r.ReceiptCustomer(testReceipt(), fixedNow)
	require.NoError(t, err)
	rb, err := r.ReceiptCustomer(testReceipt(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)
}

func TestReceiptCustomer(t *testing.T) {
	email, err := MustNew().ReceiptCustomer(testReceipt(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Order Confirmation - #ORD-1001", email.Subject)
	assert.Contains(t, email.HTML, "USD 200.00") // derived line subtotal
	assert.Contains(t, email.HTML, "USD 219.99") // subtotal
	assert.Contains(t, email.HTML, "USD 10.00")  // shipping
	assert.Contains(t, email.HTML, "USD 229.99") // total
	assert.Contains(t, email.HTML, "Print &lt;B&gt;")
	assert.Contains(t, email.HTML, "NW1 6XE<br>")

	assert.Contains(t, email.Text, "- Painting A x 2 @ USD 100.00 = USD 200.00")
	assert.Contains(t, email.Text, "Total:    USD 229.99")
	assert.Contains(t, email.Text, "12 Analytical Way\nLondon\nNW1 6XE")
}

func TestReceiptAdmin(t *testing.T) {
	email, err := MustNew().ReceiptAdmin(testReceipt(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "New Order #ORD-1001 - Ada Lovelace", email.Subject)
	assert.Contains(t, email.HTML, "Total: USD 229.99")
	assert.Contains(t, email.Text, "Ship to: 12 Analytical Way, London, NW1 6XE")
}

func TestTestEmail(t *testing.T) {
	email, err := MustNew().TestEmail(domain.SMTPSummary{Host: "smtp.example.com", Port: 465, Secure: true, User: "shop@example.com"}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "SMTP test email", email.Subject)
	assert.Contains(t, email.Text, "smtp.example.com:465")
	assert.Contains(t, email.HTML, "Implicit TLS: true")
}

func TestAddressLines(t *testing.T) {
	assert.Equal(t, []string{"1 Main St", "Lagos", "Nigeria"}, AddressLines(" 1 Main St ,Lagos,, Nigeria"))
	assert.Empty(t, AddressLines(""))
}
