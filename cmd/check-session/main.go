package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/config"
	"github.com/Timmydavid123/server/internal/payments"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/check-session/main.go <checkout_session_id>")
		fmt.Println("Example: go run cmd/check-session/main.go cs_test_a1b2c3")
		os.Exit(1)
	}
	sessionID := strings.TrimSpace(os.Args[1])

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := payments.NewClient(cfg.Stripe, logger)

	fmt.Printf("🔍 Fetching checkout session: %s\n\n", sessionID)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Stripe.Timeout)
	defer cancel()

	v, err := client.VerifySession(ctx, sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to fetch session: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode session: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if !v.PaymentStatus.IsValid() {
		fmt.Printf("\n⚠️  Unknown payment status %q\n", v.PaymentStatus)
	}
}
