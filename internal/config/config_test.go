package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.Secure)
	assert.False(t, cfg.SMTP.SkipTLSVerify)
	assert.Equal(t, 10*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Stripe.Timeout)
	assert.Equal(t, TotalCheckStrict, cfg.Receipt.TotalCheck)
	assert.False(t, cfg.SMTP.Configured())
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_MissingStripeKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
}

func TestLoad_FromEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8081")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_SECURE", "false")
	t.Setenv("SMTP_TIMEOUT", "3")
	t.Setenv("PAYMENT_TIMEOUT", "750ms")
	t.Setenv("EMAIL_USER", "shop@example.com")
	t.Setenv("EMAIL_PASS", "secret")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com, http://localhost:5173 ,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	t.Setenv("RECEIPT_TOTAL_CHECK", "WARN")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mail.example.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.Secure)
	assert.Equal(t, 3*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, 750*time.Millisecond, cfg.Stripe.Timeout)
	assert.True(t, cfg.SMTP.Configured())
	assert.Equal(t, []string{"https://shop.example.com", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.Equal(t, TotalCheckWarn, cfg.Receipt.TotalCheck)
	// admin address defaults to the SMTP user
	assert.Equal(t, "shop@example.com", cfg.Mail.AdminEmail)
}

func TestLoad_AdminEmailOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("EMAIL_USER", "shop@example.com")
	t.Setenv("ADMIN_EMAIL", "owner@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", cfg.Mail.AdminEmail)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"SMTP_PORT", "abc", "SMTP_PORT"},
		{"SMTP_SECURE", "maybe", "SMTP_SECURE"},
		{"SMTP_TIMEOUT", "soon", "SMTP_TIMEOUT"},
		{"RECEIPT_TOTAL_CHECK", "lenient", "RECEIPT_TOTAL_CHECK"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
