package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/domain"
	"github.com/Timmydavid123/server/pkg/errors"
)

// PaymentGateway opens and inspects checkout sessions. payments.Client
// implements it.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error)
	VerifySession(ctx context.Context, sessionID string) (*domain.PaymentVerification, error)
}

type CheckoutService struct {
	gateway PaymentGateway
	timeout time.Duration
	logger  *zap.Logger
}

func NewCheckoutService(gateway PaymentGateway, timeout time.Duration, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{gateway: gateway, timeout: timeout, logger: logger}
}

// Create validates the cart and opens a checkout session.
func (s *CheckoutService) Create(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if err := ValidateCheckout(req); err != nil {
		return nil, err
	}

	callCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.gateway.CreateCheckoutSession(callCtx, req)
}

// Verify returns the payment state of a session. It is read-only and safe
// to call repeatedly.
func (s *CheckoutService) Verify(ctx context.Context, sessionID string) (*domain.PaymentVerification, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.Validation(MsgSessionIDRequired)
	}

	callCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	v, err := s.gateway.VerifySession(callCtx, sessionID)
	if err != nil {
		return nil, err
	}
	if !v.PaymentStatus.IsValid() {
		s.logger.Warn("Gateway returned unknown payment status",
			zap.String("session_id", sessionID),
			zap.String("payment_status", string(v.PaymentStatus)))
	}
	return v, nil
}
