package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/config"
	apperrors "github.com/Timmydavid123/server/pkg/errors"
)

// Message is an outgoing email with HTML and plain-text bodies
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Transport sends mail through a relay.
type Transport interface {
	// Configured reports whether credentials are present.
	Configured() bool
	// Verify round-trips a handshake with the relay.
	Verify(ctx context.Context) error
	// Send delivers one message and returns its Message-ID.
	Send(ctx context.Context, msg Message) (string, error)
}

// SMTPTransport is a long-lived SMTP client shared by all requests.
// Operations hold the slot for the whole dial-work-close sequence; waiting
// for it gives up when the caller's context ends.
type SMTPTransport struct {
	cfg      config.SMTPConfig
	fromName string
	client   *mail.Client
	sem      chan struct{}
	logger   *zap.Logger
}

// NewSMTPTransport builds the relay client. It does not dial. A transport
// built without credentials reports Configured() == false and refuses to send.
func NewSMTPTransport(cfg config.SMTPConfig, fromName string, logger *zap.Logger) (*SMTPTransport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &SMTPTransport{cfg: cfg, fromName: fromName, sem: make(chan struct{}, 1), logger: logger}
	if !cfg.Configured() {
		logger.Warn("SMTP credentials not set, email endpoints are disabled",
			zap.String("host", cfg.Host))
		return t, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.SkipTLSVerify {
		logger.Warn("SMTP certificate verification disabled", zap.String("host", cfg.Host))
		opts = append(opts, mail.WithTLSConfig(&tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: true, //nolint:gosec // opt-in via SMTP_TLS_SKIP_VERIFY
		}))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	t.client = client
	return t, nil
}

func (t *SMTPTransport) Configured() bool {
	return t.client != nil
}

// Sender is the address mail is sent from.
func (t *SMTPTransport) Sender() string {
	return t.cfg.Username
}

func (t *SMTPTransport) Verify(ctx context.Context) error {
	if !t.Configured() {
		return &apperrors.ErrNotConfigured{Service: apperrors.ServiceMail}
	}

	if err := t.acquire(ctx); err != nil {
		return err
	}
	defer t.release()

	if err := t.client.DialWithContext(ctx); err != nil {
		t.logger.Error("SMTP verify failed",
			zap.String("host", t.cfg.Host),
			zap.Int("port", t.cfg.Port),
			zap.Error(err))
		return &apperrors.ErrServiceUnavailable{Service: apperrors.ServiceMail, Err: err}
	}
	if err := t.client.Close(); err != nil {
		t.logger.Warn("SMTP close after verify failed", zap.Error(err))
	}
	return nil
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) (string, error) {
	if !t.Configured() {
		return "", &apperrors.ErrNotConfigured{Service: apperrors.ServiceMail}
	}

	m, id, err := t.build(msg)
	if err != nil {
		return "", &apperrors.ErrUpstream{Service: apperrors.ServiceMail, Op: "build message", Err: err}
	}

	if err := t.acquire(ctx); err != nil {
		return "", err
	}
	defer t.release()

	if err := t.client.DialAndSendWithContext(ctx, m); err != nil {
		t.logger.Error("SMTP send failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return "", &apperrors.ErrUpstream{Service: apperrors.ServiceMail, Op: "send", Err: err}
	}

	t.logger.Info("Email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("message_id", id))
	return id, nil
}

func (t *SMTPTransport) acquire(ctx context.Context) error {
	select {
	case t.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		t.logger.Warn("Gave up waiting for the SMTP client", zap.Error(ctx.Err()))
		return &apperrors.ErrServiceUnavailable{Service: apperrors.ServiceMail, Err: ctx.Err()}
	}
}

func (t *SMTPTransport) release() { <-t.sem }

func (t *SMTPTransport) build(msg Message) (*mail.Msg, string, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(t.fromName, t.cfg.Username); err != nil {
		return nil, "", fmt.Errorf("invalid sender %q: %w", t.cfg.Username, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, "", fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, "", fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
		}
	}
	m.Subject(msg.Subject)

	id := MessageID(t.cfg.Username)
	m.SetMessageIDWithValue(id)
	m.SetDate()

	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return m, "<" + id + ">", nil
}

// MessageID returns a unique id in the sender's domain, without angle brackets.
func MessageID(sender string) string {
	domain := "localhost"
	if at := strings.LastIndex(sender, "@"); at >= 0 && at < len(sender)-1 {
		domain = sender[at+1:]
	}
	return uuid.NewString() + "@" + domain
}
