// Package templates renders the HTML and plain-text bodies of every email the
// server sends. HTML bodies go through html/template, so user-supplied fields
// are escaped before they reach a mail client.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Timmydavid123/server/internal/domain"
)

//go:embed files/*.tmpl
var files embed.FS

const dateLayout = "January 2, 2006 at 3:04 PM MST"

// Email is a rendered message ready to be addressed.
type Email struct {
	Subject string
	HTML    string
	Text    string
}

// Receipt is an order receipt with the shipping charge and currency resolved.
type Receipt struct {
	Order    domain.ReceiptRequest
	Currency domain.Currency
	Shipping decimal.Decimal
}

// Renderer holds the parsed templates. It is safe for concurrent use.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(files, "files/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(files, "files/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// MustNew is New for package-level setup and tests.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

type contactData struct {
	domain.ContactMessage
	Date string
}

// ContactAdmin renders the site owner's notification for a contact form
// submission. The caller addresses it with reply-to set to the submitter.
func (r *Renderer) ContactAdmin(msg domain.ContactMessage, now time.Time) (Email, error) {
	data := contactData{ContactMessage: msg, Date: now.Format(dateLayout)}
	return r.render("contact_admin", "New contact form: "+oneLine(msg.Subject), data)
}

// ContactAcknowledgement renders the confirmation sent to the submitter.
func (r *Renderer) ContactAcknowledgement(msg domain.ContactMessage, now time.Time) (Email, error) {
	data := contactData{ContactMessage: msg, Date: now.Format(dateLayout)}
	return r.render("contact_ack", "Thank you for contacting us", data)
}

type receiptLine struct {
	Title    string
	Quantity int64
	Price    string
	Subtotal string
}

type receiptData struct {
	OrderID       string
	CustomerName  string
	CustomerEmail string
	Currency      string
	Lines         []receiptLine
	Subtotal      string
	Shipping      string
	Total         string
	AddressLines  []string
	Date          string
}

func newReceiptData(rc Receipt, now time.Time) receiptData {
	o := rc.Order
	data := receiptData{
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Currency:      string(rc.Currency),
		Subtotal:      money(o.Subtotal()),
		Shipping:      money(rc.Shipping),
		Total:         money(o.Total),
		AddressLines:  AddressLines(o.ShippingAddress),
		Date:          now.Format(dateLayout),
	}
	for _, item := range o.Items {
		data.Lines = append(data.Lines, receiptLine{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    money(item.Price),
			Subtotal: money(item.Subtotal()),
		})
	}
	return data
}

// ReceiptCustomer renders the customer's order confirmation.
func (r *Renderer) ReceiptCustomer(rc Receipt, now time.Time) (Email, error) {
	subject := "Order Confirmation - #" + oneLine(rc.Order.OrderID)
	return r.render("receipt_customer", subject, newReceiptData(rc, now))
}

// ReceiptAdmin renders the compact copy of a receipt for the shop owner.
func (r *Renderer) ReceiptAdmin(rc Receipt, now time.Time) (Email, error) {
	subject := fmt.Sprintf("New Order #%s - %s", oneLine(rc.Order.OrderID), oneLine(rc.Order.CustomerName))
	return r.render("receipt_admin", subject, newReceiptData(rc, now))
}

type testData struct {
	SMTP domain.SMTPSummary
	Date string
}

// TestEmail renders the diagnostic message sent by GET /test-email.
func (r *Renderer) TestEmail(smtp domain.SMTPSummary, now time.Time) (Email, error) {
	return r.render("test_email", "SMTP test email", testData{SMTP: smtp, Date: now.Format(dateLayout)})
}

func (r *Renderer) render(name, subject string, data any) (Email, error) {
	var html, text bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return Email{}, fmt.Errorf("render %s html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return Email{}, fmt.Errorf("render %s text: %w", name, err)
	}
	return Email{Subject: subject, HTML: html.String(), Text: text.String()}, nil
}

// AddressLines splits a comma-delimited address into trimmed, non-empty lines.
func AddressLines(address string) []string {
	var lines []string
	for _, part := range strings.Split(address, ",") {
		if p := strings.TrimSpace(part); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// oneLine collapses whitespace so user input cannot break a header.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
