package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/config"
	"github.com/Timmydavid123/server/internal/domain"
	"github.com/Timmydavid123/server/internal/mailer"
	"github.com/Timmydavid123/server/internal/templates"
	"github.com/Timmydavid123/server/pkg/errors"
)

// DiagnosticsService backs the health and test-email endpoints
type DiagnosticsService struct {
	transport  mailer.Transport
	renderer   *templates.Renderer
	smtp       config.SMTPConfig
	adminEmail string
	logger     *zap.Logger
	now        func() time.Time
}

func NewDiagnosticsService(transport mailer.Transport, renderer *templates.Renderer, cfg *config.Config, logger *zap.Logger) *DiagnosticsService {
	return &DiagnosticsService{
		transport:  transport,
		renderer:   renderer,
		smtp:       cfg.SMTP,
		adminEmail: cfg.Mail.AdminEmail,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *DiagnosticsService) Health() domain.HealthStatus {
	return domain.HealthStatus{
		Status:          "OK",
		Timestamp:       s.now().UTC(),
		EmailConfigured: s.transport.Configured(),
	}
}

// SMTPSummary describes the relay without the password.
func (s *DiagnosticsService) SMTPSummary() domain.SMTPSummary {
	return domain.SMTPSummary{
		Host:   s.smtp.Host,
		Port:   s.smtp.Port,
		Secure: s.smtp.Secure,
		User:   s.smtp.Username,
	}
}

// SendTestEmail verifies the relay and mails a test message to the admin
// address, returning its Message-ID.
func (s *DiagnosticsService) SendTestEmail(ctx context.Context) (string, error) {
	if !s.transport.Configured() {
		return "", &errors.ErrNotConfigured{Service: errors.ServiceMail}
	}

	verifyCtx, cancel := withTimeout(ctx, s.smtp.Timeout)
	err := s.transport.Verify(verifyCtx)
	cancel()
	if err != nil {
		return "", err
	}

	email, err := s.renderer.TestEmail(s.SMTPSummary(), s.now())
	if err != nil {
		return "", fmt.Errorf("render test email: %w", err)
	}

	sendCtx, cancel := withTimeout(ctx, s.smtp.Timeout)
	defer cancel()
	id, err := s.transport.Send(sendCtx, mailer.Message{
		To:      s.adminEmail,
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Test email sent", zap.String("to", s.adminEmail), zap.String("message_id", id))
	return id, nil
}
