package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"journaldigest/internal/app"
	"journaldigest/internal/config"
	"journaldigest/internal/logging"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; process environment still applies.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if err := application.Run(ctx); err != nil {
		logger.Error("digest run failed", "error", err)
		os.Exit(1)
	}
}
