package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Receipt total checking modes.
const (
	TotalCheckStrict = "strict"
	TotalCheckWarn   = "warn"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string
	TrustedProxies []string // proxies whose X-Forwarded-For is believed; empty trusts none
	StaticDir      string // built frontend, served only in production
	Stripe         StripeConfig
	SMTP           SMTPConfig
	Mail           MailConfig
	Contact        ContactConfig
	Receipt        ReceiptConfig
	AdminKeyHash   string // ADMIN_API_KEY_HASH: bcrypt hash guarding GET /test-email; empty leaves it open
}

type StripeConfig struct {
	SecretKey string
	Timeout   time.Duration
}

// SMTPConfig describes the mail relay connection
type SMTPConfig struct {
	Host          string
	Port          int
	Secure        bool // implicit TLS when true, opportunistic STARTTLS otherwise
	SkipTLSVerify bool
	Username      string
	Password      string
	Timeout       time.Duration
}

// Configured reports whether SMTP credentials are present.
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != ""
}

type MailConfig struct {
	FromName   string
	AdminEmail string // receives contact notifications and receipt copies
}

// ContactConfig limits contact form submissions per client IP
type ContactConfig struct {
	RatePerMinute float64
	Burst         int
}

type ReceiptConfig struct {
	TotalCheck string // strict | warn
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.SetConfigName(".env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	// Set defaults
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	v.AutomaticEnv()

	// Try to read .env file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	l := loader{v: v}
	cfg := &Config{
		Port:           l.str("PORT", "5000"),
		Environment:    l.str("ENVIRONMENT", "development"),
		LogLevel:       l.str("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(l.str("ALLOWED_ORIGINS", "")),
		TrustedProxies: splitList(l.str("TRUSTED_PROXIES", "")),
		StaticDir:      strings.TrimSpace(l.str("STATIC_DIR", "../client/dist")),
		Stripe: StripeConfig{
			SecretKey: strings.TrimSpace(l.str("STRIPE_SECRET_KEY", "")),
			Timeout:   l.duration("PAYMENT_TIMEOUT", 15*time.Second),
		},
		SMTP: SMTPConfig{
			Host:          strings.TrimSpace(l.str("SMTP_HOST", "smtp.gmail.com")),
			Port:          l.integer("SMTP_PORT", 465),
			Secure:        l.boolean("SMTP_SECURE", true),
			SkipTLSVerify: l.boolean("SMTP_TLS_SKIP_VERIFY", false),
			Username:      strings.TrimSpace(l.str("EMAIL_USER", "")),
			Password:      l.str("EMAIL_PASS", ""),
			Timeout:       l.duration("SMTP_TIMEOUT", 10*time.Second),
		},
		Mail: MailConfig{
			FromName: l.str("EMAIL_FROM_NAME", "Storefront"),
		},
		Contact: ContactConfig{
			RatePerMinute: float64(l.integer("CONTACT_RATE_PER_MINUTE", 5)),
			Burst:         l.integer("CONTACT_RATE_BURST", 3),
		},
		Receipt: ReceiptConfig{
			TotalCheck: strings.ToLower(l.str("RECEIPT_TOTAL_CHECK", TotalCheckStrict)),
		},
		AdminKeyHash: strings.TrimSpace(l.str("ADMIN_API_KEY_HASH", "")),
	}
	cfg.Mail.AdminEmail = strings.TrimSpace(l.str("ADMIN_EMAIL", cfg.SMTP.Username))

	if l.err != nil {
		return nil, l.err
	}

	// Validate required fields
	if cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.Receipt.TotalCheck != TotalCheckStrict && cfg.Receipt.TotalCheck != TotalCheckWarn {
		return nil, fmt.Errorf("RECEIPT_TOTAL_CHECK must be %q or %q, got %q", TotalCheckStrict, TotalCheckWarn, cfg.Receipt.TotalCheck)
	}

	return cfg, nil
}

// loader reads typed values, remembering the first parse failure.
type loader struct {
	v   *viper.Viper
	err error
}

func (l *loader) str(key, defaultValue string) string {
	return getEnvOrViper(l.v, key, defaultValue)
}

func (l *loader) integer(key string, defaultValue int) int {
	raw := l.str(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		l.fail(fmt.Errorf("%s must be an integer: %w", key, err))
		return defaultValue
	}
	return n
}

func (l *loader) boolean(key string, defaultValue bool) bool {
	raw := l.str(key, "")
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		l.fail(fmt.Errorf("%s must be a boolean: %w", key, err))
		return defaultValue
	}
	return b
}

// duration accepts Go durations ("10s") or a bare number of seconds.
func (l *loader) duration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(l.str(key, ""))
	if raw == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		l.fail(fmt.Errorf("%s must be a duration: %w", key, err))
		return defaultValue
	}
	return d
}

func (l *loader) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

func getEnvOrViper(v *viper.Viper, key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
