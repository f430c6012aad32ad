package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/castaway/internal/services"
	"github.com/desertthunder/castaway/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Retriever: services.NewYTDLP(logger),
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "castaway",
		Usage:    "Convert podcast & video URLs to audio in blob storage",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
