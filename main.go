package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"tactics_server/internal/cli"
	"tactics_server/pkg/logger"
)

func main() {
	// Load .env file if exists (for local development)
	envErr := godotenv.Load()

	// Commands build their own logger from config; this one covers startup
	// and the final error.
	logger.Init(logger.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Output:  os.Stderr,
		Service: "tactics",
	})
	if envErr != nil {
		logger.Debug().Msg("no .env file found, using environment variables")
	}

	if err := cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
