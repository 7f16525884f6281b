package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/domain"
	"github.com/Timmydavid123/server/internal/mailer"
	"github.com/Timmydavid123/server/internal/templates"
	"github.com/Timmydavid123/server/pkg/errors"
)

// ContactService handles contact form submissions
type ContactService struct {
	transport  mailer.Transport
	renderer   *templates.Renderer
	adminEmail string
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewContactService(transport mailer.Transport, renderer *templates.Renderer, adminEmail string, timeout time.Duration, logger *zap.Logger) *ContactService {
	return &ContactService{
		transport:  transport,
		renderer:   renderer,
		adminEmail: adminEmail,
		timeout:    timeout,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit validates the message, checks the relay, then notifies the admin
// and acknowledges the sender, in that order. A failed admin send means the
// acknowledgement is never attempted.
func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	msg = NormalizeContact(msg)
	if err := ValidateContact(msg); err != nil {
		return err
	}
	if !s.transport.Configured() {
		s.logger.Error("Contact form submitted but email is not configured")
		return &errors.ErrNotConfigured{Service: errors.ServiceMail}
	}

	verifyCtx, cancel := withTimeout(ctx, s.timeout)
	err := s.transport.Verify(verifyCtx)
	cancel()
	if err != nil {
		return err
	}

	now := s.now()
	admin, err := s.renderer.ContactAdmin(msg, now)
	if err != nil {
		return fmt.Errorf("render admin notification: %w", err)
	}
	ack, err := s.renderer.ContactAcknowledgement(msg, now)
	if err != nil {
		return fmt.Errorf("render acknowledgement: %w", err)
	}

	if _, err := s.send(ctx, mailer.Message{
		To:      s.adminEmail,
		ReplyTo: msg.Email,
		Subject: admin.Subject,
		HTML:    admin.HTML,
		Text:    admin.Text,
	}); err != nil {
		return fmt.Errorf("send admin notification: %w", err)
	}

	if _, err := s.send(ctx, mailer.Message{
		To:      msg.Email,
		Subject: ack.Subject,
		HTML:    ack.HTML,
		Text:    ack.Text,
	}); err != nil {
		return fmt.Errorf("send acknowledgement: %w", err)
	}

	s.logger.Info("Contact form processed", zap.String("from", msg.Email))
	return nil
}

func (s *ContactService) send(ctx context.Context, msg mailer.Message) (string, error) {
	sendCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.transport.Send(sendCtx, msg)
}

// withTimeout bounds one outbound call; zero means no extra bound.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
