package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/config"
	"github.com/Timmydavid123/server/internal/domain"
	apperrors "github.com/Timmydavid123/server/pkg/errors"
)

// Metadata keys attached to every checkout session.
const (
	MetadataCustomerEmail    = "customerEmail"
	MetadataItemCount        = "itemCount"
	MetadataOriginalCurrency = "originalCurrency"
)

// SessionAPI is the subset of the Stripe checkout session API we call.
// session.Client satisfies it.
type SessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type Client struct {
	sessions SessionAPI
	logger   *zap.Logger
}

// NewClient creates a Stripe-backed payment client. Network retries are
// disabled: every call is attempted exactly once.
func NewClient(cfg config.StripeConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		LeveledLogger:     logger.Sugar(),
		MaxNetworkRetries: stripe.Int64(0),
	})
	return NewClientWithAPI(session.Client{B: backend, Key: cfg.SecretKey}, logger)
}

// NewClientWithAPI creates a client over an arbitrary session API
func NewClientWithAPI(api SessionAPI, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{sessions: api, logger: logger}
}

// CreateCheckoutSession prices the cart, appends shipping and opens a
// checkout session at the gateway.
func (c *Client) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	policy := ResolveCurrency(req.Currency)
	if policy.CurrencyFallback {
		c.logger.Warn("Unsupported currency requested, charging in default currency",
			zap.String("requested", req.Currency),
			zap.String("currency", string(policy.Currency)))
	}
	if policy.ShippingFallback {
		c.logger.Warn("No shipping rate for currency, using default rate",
			zap.String("currency", string(policy.Currency)),
			zap.String("shipping", policy.Shipping.String()))
	}

	multiplier := NormalizeMultiplier(req.CurrencyMultiplier)
	lines := BuildLineItems(req.Items, policy, multiplier)
	currency := strings.ToLower(string(policy.Currency))

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for _, line := range lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}
	params.AddMetadata(MetadataCustomerEmail, req.CustomerEmail)
	params.AddMetadata(MetadataItemCount, strconv.Itoa(len(req.Items)))
	params.AddMetadata(MetadataOriginalCurrency, req.Currency)
	params.Context = ctx

	s, err := c.sessions.New(params)
	if err != nil {
		return nil, c.classify("create session", err)
	}

	c.logger.Info("Checkout session created",
		zap.String("session_id", s.ID),
		zap.String("currency", string(policy.Currency)),
		zap.Int("line_items", len(lines)))

	return &domain.CheckoutSession{
		ID:       s.ID,
		URL:      s.URL,
		Metadata: s.Metadata,
	}, nil
}

// VerifySession reads a checkout session's payment state. It never
// modifies the session.
func (c *Client) VerifySession(ctx context.Context, sessionID string) (*domain.PaymentVerification, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.Validation("Session ID is required")
	}

	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent")
	params.Context = ctx

	s, err := c.sessions.Get(sessionID, params)
	if err != nil {
		return nil, c.classify("get session", err)
	}

	email := s.CustomerEmail
	if email == "" && s.CustomerDetails != nil {
		email = s.CustomerDetails.Email
	}

	return &domain.PaymentVerification{
		ID:            s.ID,
		PaymentStatus: domain.PaymentStatus(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		CustomerEmail: email,
		Metadata:      s.Metadata,
	}, nil
}

// classify logs the gateway failure in full and wraps it for the handlers.
func (c *Client) classify(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		c.logger.Error("Stripe request failed",
			zap.String("op", op),
			zap.String("type", string(stripeErr.Type)),
			zap.String("code", string(stripeErr.Code)),
			zap.Int("http_status", stripeErr.HTTPStatusCode),
			zap.String("request_id", stripeErr.RequestID),
			zap.String("message", stripeErr.Msg))
	} else {
		c.logger.Error("Stripe request failed", zap.String("op", op), zap.Error(err))
	}
	return &apperrors.ErrUpstream{
		Service: apperrors.ServicePayment,
		Op:      op,
		Err:     fmt.Errorf("stripe: %w", err),
	}
}
