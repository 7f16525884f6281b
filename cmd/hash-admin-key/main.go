package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Timmydavid123/server/internal/api/middleware"
)

func main() {
	keyFlag := flag.String("key", "", "Admin key to hash (save it; it cannot be retrieved later)")
	flag.Parse()

	apiKey := *keyFlag
	if apiKey == "" && flag.NArg() >= 1 {
		apiKey = flag.Arg(0)
	}
	// Trim so the stored hash matches what the server receives (AdminKeyMiddleware trims the header)
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/hash-admin-key/main.go --key \"your-admin-key\"")
		fmt.Println("Then set ADMIN_API_KEY_HASH to the printed hash and send the key in the X-Admin-Key header.")
		os.Exit(1)
	}

	hash, err := middleware.HashAPIKey(apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ADMIN_API_KEY_HASH='%s'\n", hash)
}
