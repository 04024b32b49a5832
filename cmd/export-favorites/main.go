// Export the saved favorite recipes to a dated markdown file
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/thesavant42/recipefinder/internal/config"
	"github.com/thesavant42/recipefinder/internal/db"
	"github.com/thesavant42/recipefinder/internal/favorites"
	"github.com/thesavant42/recipefinder/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	dbPath := flag.String("db", "", "Path to SQLite database (default from config)")
	outputDir := flag.String("output", ".", "Directory to write favorites-YYYY-MM-DD.md into")
	reset := flag.Bool("reset", false, "Clear the saved favorites after a successful export")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintError(os.Stderr, fmt.Sprintf("Failed to load configuration: %v", err))
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	if _, err := os.Stat(cfg.DBPath); err != nil {
		ui.PrintError(os.Stderr, fmt.Sprintf("Database not found: %s", cfg.DBPath))
		os.Exit(1)
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		ui.PrintError(os.Stderr, fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	ctx := context.Background()
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: cfg.Level()})
	favs, err := favorites.Open(ctx, database, logger)
	if err != nil {
		ui.PrintError(os.Stderr, fmt.Sprintf("Failed to load favorites: %v", err))
		os.Exit(1)
	}

	recipes := favs.List()
	if len(recipes) == 0 {
		fmt.Println("No favorite recipes saved yet.")
		return
	}

	path, err := ui.ExportFavoritesToMarkdown(recipes, *outputDir)
	if err != nil {
		ui.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess(os.Stdout, fmt.Sprintf("Exported %d favorites to %s", len(recipes), path))

	if *reset {
		if err := favs.Clear(ctx); err != nil {
			ui.PrintError(os.Stderr, fmt.Sprintf("Failed to clear favorites: %v", err))
			os.Exit(1)
		}
		ui.PrintSuccess(os.Stdout, "Cleared saved favorites")
	}
}
