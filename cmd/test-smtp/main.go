package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/config"
	"github.com/Timmydavid123/server/internal/mailer"
	"github.com/Timmydavid123/server/internal/service"
	"github.com/Timmydavid123/server/internal/templates"
)

func main() {
	send := flag.Bool("send", false, "also send a test message to ADMIN_EMAIL")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Testing SMTP connection...\n\n")
	fmt.Printf("Host:   %s:%d\n", cfg.SMTP.Host, cfg.SMTP.Port)
	fmt.Printf("Secure: %t\n", cfg.SMTP.Secure)
	fmt.Printf("User:   %s\n", cfg.SMTP.Username)
	fmt.Printf("Pass:   %s\n", mask(cfg.SMTP.Password))
	fmt.Println()

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	transport, err := mailer.NewSMTPTransport(cfg.SMTP, cfg.Mail.FromName, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid SMTP settings: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SMTP.Timeout+30*time.Second)
	defer cancel()

	if err := transport.Verify(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Connection failed: %v\n\n", err)
		fmt.Println("Please check:")
		fmt.Println("  1. EMAIL_USER / EMAIL_PASS are set (Gmail needs an app password)")
		fmt.Println("  2. SMTP_PORT matches SMTP_SECURE: 465 with true, 587 with false")
		fmt.Println("  3. Outbound SMTP is not blocked by your network")
		os.Exit(1)
	}
	fmt.Println("✅ Handshake and authentication successful!")

	if !*send {
		return
	}

	diag := service.NewDiagnosticsService(transport, templates.MustNew(), cfg, logger)
	id, err := diag.SendTestEmail(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Send failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Test email sent to %s\nMessage-ID: %s\n", cfg.Mail.AdminEmail, id)
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + "..." + secret[len(secret)-2:]
}
