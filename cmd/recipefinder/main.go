package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/thesavant42/recipefinder/internal/api"
	"github.com/thesavant42/recipefinder/internal/config"
	"github.com/thesavant42/recipefinder/internal/controller"
	"github.com/thesavant42/recipefinder/internal/db"
	"github.com/thesavant42/recipefinder/internal/favorites"
	"github.com/thesavant42/recipefinder/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default: recipefinder.yaml if present)")
	dbPath := flag.String("db", "", "Path to SQLite database file")
	baseURL := flag.String("base-url", "", "Catalog API base URL")
	debug := flag.Bool("debug", false, "Enable debug logging")
	sectionFlag := flag.String("section", "home", "Initial section (home, search, categories, areas, ingredients, random, random-batch, latest, favorites, contact)")
	exportDir := flag.String("export-dir", ".", "Directory for favorites markdown exports")
	noSplash := flag.Bool("no-splash", false, "Skip the splash screen")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintError(os.Stderr, fmt.Sprintf("Failed to load configuration: %v", err))
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		ui.PrintError(os.Stderr, fmt.Sprintf("Invalid configuration: %v", err))
		os.Exit(1)
	}

	initial, err := controller.ParseSection(*sectionFlag)
	if err != nil {
		ui.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := run(cfg, initial, *exportDir, !*noSplash); err != nil {
		ui.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, initial controller.Section, exportDir string, splash bool) error {
	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	// The TUI owns the terminal, so logs go to a file next to the database
	logFile, err := config.OpenLogFile(cfg.DBPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	apiLogger := config.NewLogger(logFile, "API", cfg.Level())
	appLogger := config.NewLogger(logFile, "APP", cfg.Level())
	appLogger.Info("Starting recipe finder", "db", cfg.DBPath, "base_url", cfg.BaseURL, "section", initial)

	ctx := context.Background()
	favs, err := favorites.Open(ctx, database, appLogger)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	client := api.NewCatalogClient(cfg.BaseURL, cfg.CacheTTL, apiLogger)
	client.SetHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})

	renderer := ui.NewMessageRenderer()
	ctrl := controller.New(client, favs, renderer, appLogger)

	if splash {
		if err := ui.ShowSplash(); err != nil {
			appLogger.Warn("Splash screen failed", "err", err)
		}
	}

	err = ui.RunApp(ctrl, renderer, ui.AppConfig{
		Debounce:       cfg.Debounce,
		ExportDir:      exportDir,
		InitialSection: initial,
		Logger:         appLogger,
	})

	stats := client.Cache().GetStats()
	appLogger.Info("Exiting", "cache_hits", stats.Hits, "cache_misses", stats.Misses, "favorites", favs.Len())
	return err
}
