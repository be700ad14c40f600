package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/election/internal/adapters/token"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

// token prints an access token for the given address, signed with
// JWT_SECRET. Useful for local development against the server.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	var (
		address string
		ttl     time.Duration
	)
	flag.StringVar(&address, "address", "", "Caller address to issue the token for")
	flag.DurationVar(&ttl, "ttl", 15*time.Minute, "Token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	signed, err := token.NewHMAC([]byte(secret)).Issue(domain.Address(address), ttl)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}
	fmt.Println(signed)
}
