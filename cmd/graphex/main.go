package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"graphex/internal/catalog"
	"graphex/internal/config"
	"graphex/internal/logging"
	"graphex/internal/ui"
)

const appName = "graphex"

func main() {
	// CLI args take precedence over env.
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Normalize(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closer, err := logging.InitLogger(appName, cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closer.Close()

	cat, err := loadCatalog(cfg)
	if err != nil {
		logger.Error("catalog load failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(2)
	}
	logger.Info("starting", "base_url", cfg.BaseURL, "versions", cfg.Versions, "catalog_urls", cat.Len())

	if err := ui.NewApp(cfg, cat, logger).Run(); err != nil {
		logger.Error("ui exited", "error", err)
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(1)
	}
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cat, err := catalog.LoadVersions(ctx, cfg.BaseURL, cfg.Specs)
	if errors.Is(err, catalog.ErrNoSources) {
		return catalog.New(), nil
	}
	return cat, err
}
