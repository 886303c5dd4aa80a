// seed loads the admin account and the demo catalog into the configured PostgreSQL database.
//
// Usage: go run ./cmd/seed [-demo=false] [-admin=false]
// Reads the same environment as the API (DATABASE_URL, ADMIN_EMAIL, ADMIN_PASSWORD, ...).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/seed"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/storage"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", true, "seed demo products, operations and movements into empty tables")
	admin := flag.Bool("admin", true, "seed the ADMIN_EMAIL account when it does not exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage != config.StoragePostgres {
		fmt.Fprintln(os.Stderr, "seed only makes sense with STORAGE_DRIVER=postgres")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	zl := log.Zerolog()

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, zl)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer backend.Close()

	if *admin {
		if !cfg.Admin.Enabled() {
			log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin")
		} else {
			authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{Secret: cfg.JWT.Secret}, zl)
			created, err := authUC.SeedAdmin(ctx, cfg.Admin.FullName, cfg.Admin.Email, cfg.Admin.Password)
			if err != nil {
				log.Fatal().Err(err).Msg("seed admin")
			}
			if !created {
				log.Info().Str("email", cfg.Admin.Email).Msg("admin already exists")
			}
		}
	}
	if *demo {
		if _, err := seed.Demo(ctx, backend.TxRunner, zl); err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
	}
}
