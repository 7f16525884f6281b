package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/config"
	"github.com/Timmydavid123/server/internal/domain"
	"github.com/Timmydavid123/server/internal/mailer"
	"github.com/Timmydavid123/server/internal/payments"
	"github.com/Timmydavid123/server/internal/templates"
	"github.com/Timmydavid123/server/pkg/errors"
)

// ReceiptService emails order receipts to the customer and the shop owner
type ReceiptService struct {
	transport  mailer.Transport
	renderer   *templates.Renderer
	adminEmail string
	totalCheck string
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewReceiptService(transport mailer.Transport, renderer *templates.Renderer, cfg *config.Config, logger *zap.Logger) *ReceiptService {
	return &ReceiptService{
		transport:  transport,
		renderer:   renderer,
		adminEmail: cfg.Mail.AdminEmail,
		totalCheck: cfg.Receipt.TotalCheck,
		timeout:    cfg.SMTP.Timeout,
		logger:     logger,
		now:        time.Now,
	}
}

// Resolve fills in the receipt's currency and shipping charge. A missing
// shipping amount is taken from the currency's flat rate. When the request
// names neither, the currency is the one whose rate equals total minus
// subtotal. The flag is false if no rate matched, in which case the total
// cannot be checked.
func Resolve(req domain.ReceiptRequest) (templates.Receipt, bool) {
	if strings.TrimSpace(req.Currency) == "" && req.Shipping == nil {
		if c, ok := payments.CurrencyForShipping(req.Total.Sub(req.Subtotal())); ok {
			policy := payments.ResolveCurrency(string(c))
			return templates.Receipt{Order: req, Currency: policy.Currency, Shipping: policy.Shipping}, true
		}
		policy := payments.ResolveCurrency("")
		return templates.Receipt{Order: req, Currency: policy.Currency, Shipping: policy.Shipping}, false
	}

	policy := payments.ResolveCurrency(req.Currency)
	shipping := policy.Shipping
	if req.Shipping != nil {
		shipping = *req.Shipping
	}
	return templates.Receipt{Order: req, Currency: policy.Currency, Shipping: shipping}, true
}

// CheckTotal compares the caller's total with Σ price×quantity + shipping
// at cent precision.
func CheckTotal(rc templates.Receipt) error {
	expected := rc.Order.Subtotal().Add(rc.Shipping).Round(2)
	if !expected.Equal(rc.Order.Total.Round(2)) {
		return &errors.ErrValidation{
			Message: MsgTotalMismatch,
			Fields:  map[string]string{"total": "expected " + expected.StringFixed(2)},
		}
	}
	return nil
}

// Send emails the customer receipt, then the admin copy.
func (s *ReceiptService) Send(ctx context.Context, req domain.ReceiptRequest) error {
	if !s.transport.Configured() {
		s.logger.Error("Receipt requested but email is not configured", zap.String("order_id", req.OrderID))
		return &errors.ErrNotConfigured{Service: errors.ServiceMail}
	}
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.OrderID = strings.TrimSpace(req.OrderID)
	if err := ValidateReceipt(req); err != nil {
		return err
	}

	rc, checkable := Resolve(req)
	if !checkable {
		s.logger.Warn("Receipt has no currency or shipping and its total matches no shipping rate, sending anyway",
			zap.String("order_id", req.OrderID),
			zap.String("total", req.Total.String()),
			zap.String("subtotal", req.Subtotal().String()))
	} else if err := CheckTotal(rc); err != nil {
		if s.totalCheck == config.TotalCheckStrict {
			s.logger.Warn("Receipt rejected: total mismatch",
				zap.String("order_id", req.OrderID),
				zap.String("total", req.Total.String()),
				zap.Error(err))
			return err
		}
		s.logger.Warn("Receipt total does not match items, sending anyway",
			zap.String("order_id", req.OrderID),
			zap.String("total", req.Total.String()))
	}

	now := s.now()
	customer, err := s.renderer.ReceiptCustomer(rc, now)
	if err != nil {
		return fmt.Errorf("render customer receipt: %w", err)
	}
	admin, err := s.renderer.ReceiptAdmin(rc, now)
	if err != nil {
		return fmt.Errorf("render admin receipt: %w", err)
	}

	if _, err := s.send(ctx, mailer.Message{
		To:      req.CustomerEmail,
		ReplyTo: s.adminEmail,
		Subject: customer.Subject,
		HTML:    customer.HTML,
		Text:    customer.Text,
	}); err != nil {
		return fmt.Errorf("send customer receipt: %w", err)
	}

	if _, err := s.send(ctx, mailer.Message{
		To:      s.adminEmail,
		ReplyTo: req.CustomerEmail,
		Subject: admin.Subject,
		HTML:    admin.HTML,
		Text:    admin.Text,
	}); err != nil {
		return fmt.Errorf("send admin receipt: %w", err)
	}

	s.logger.Info("Receipt sent", zap.String("order_id", req.OrderID), zap.String("customer", req.CustomerEmail))
	return nil
}

func (s *ReceiptService) send(ctx context.Context, msg mailer.Message) (string, error) {
	sendCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.transport.Send(sendCtx, msg)
}
