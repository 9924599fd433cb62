package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"Yatube/api/config"
	"Yatube/api/controllers"
	"Yatube/api/seed"

	"github.com/joho/godotenv"
)

var server = controllers.Server{}

func init() {
	// Load .env only outside production; there config comes from the environment.
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
}

// Options are the command line switches of cmd/main.go.
type Options struct {
	Addr            string
	Seed            bool
	ClearIndexCache bool
}

func Run(opts Options) error {
	cfg := config.FromEnv()

	if err := server.Initialize(cfg); err != nil {
		return err
	}

	if opts.Seed {
		if err := seed.Load(server.DB); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	if opts.ClearIndexCache {
		n, err := server.Cache.ClearIndex(context.Background())
		if err != nil {
			return fmt.Errorf("clear index cache: %w", err)
		}
		log.Printf("[cache] cleared %d index pages", n)
		return nil
	}

	addr := opts.Addr
	if addr == "" {
		addr = ":" + cfg.Port
	}
	server.Run(addr)
	return nil
}
