// AngelaMos | 2026
// main.go

// Command devtoken creates a local signing key pair and mints staff
// tokens against it so the API can be exercised without the identity
// provider.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/carterperez-dev/gym-membership/internal/auth"
	"github.com/carterperez-dev/gym-membership/internal/config"
	"github.com/carterperez-dev/gym-membership/internal/middleware"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	privateKeyPath := flag.String("private-key", "keys/private.pem", "private key path")
	genKeys := flag.Bool("gen-keys", false, "write a new key pair and exit")
	role := flag.String("role", middleware.RoleFrontDesk, "staff role")
	name := flag.String("name", "Front Desk", "staff display name")
	staffID := flag.String("staff-id", "", "staff id (random when empty)")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	if err := run(*configPath, *privateKeyPath, *genKeys, middleware.StaffClaims{
		StaffID: *staffID,
		Name:    *name,
		Role:    *role,
	}, *ttl); err != nil {
		slog.Error("devtoken failed", "error", err)
		os.Exit(1)
	}
}

func run(
	configPath, privateKeyPath string,
	genKeys bool,
	claims middleware.StaffClaims,
	ttl time.Duration,
) error {
	//nolint:errcheck // .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if genKeys {
		return writeKeyPair(privateKeyPath, cfg.Auth.PublicKeyPath)
	}

	privatePEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return fmt.Errorf("read private key: %w", err)
	}

	signer, err := auth.NewSigner(privatePEM, cfg.Auth.Issuer, cfg.Auth.Audience)
	if err != nil {
		return err
	}

	if claims.StaffID == "" {
		claims.StaffID = uuid.NewString()
	}

	token, err := signer.Sign(claims, ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func writeKeyPair(privateKeyPath, publicKeyPath string) error {
	privatePEM, publicPEM, err := auth.GenerateKeyPair()
	if err != nil {
		return err
	}

	for _, path := range []string{privateKeyPath, publicKeyPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("create key dir: %w", err)
		}
	}

	if err := os.WriteFile(privateKeyPath, privatePEM, 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}

	//nolint:gosec // G306: public key is intentionally world-readable
	if err := os.WriteFile(publicKeyPath, publicPEM, 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}

	slog.Info("key pair written",
		"private_key", privateKeyPath,
		"public_key", publicKeyPath,
	)
	return nil
}
