package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/resonate/internal/services"
	"github.com/desertthunder/resonate/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if level, err := log.ParseLevel(v); err == nil {
			shared.SetLogLevel(logger, level)
		} else {
			logger.Warn("unknown LOG_LEVEL, keeping default", "value", v)
		}
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}
	config.ApplyEnv()

	var catalog services.Catalog
	if svc, err := services.NewSpotifyService(config.Credentials.Spotify); err == nil {
		catalog = svc
	} else {
		logger.Warn("catalog provider not configured", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "resonate",
		Usage:    "Music review API with a Spotify-backed catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
