// Debug tool that calls each catalog endpoint once and prints what came back
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thesavant42/recipefinder/internal/api"
	"github.com/thesavant42/recipefinder/internal/config"
	"github.com/thesavant42/recipefinder/internal/ui"
)

type probe struct {
	endpoint string
	call     func(ctx context.Context) (int, error)
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	baseURL := flag.String("base-url", "", "Catalog API base URL")
	query := flag.String("query", "chicken", "Search term for the name search")
	verbose := flag.Bool("v", false, "Log every request to stderr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintError(os.Stderr, fmt.Sprintf("Failed to load configuration: %v", err))
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}

	level := log.WarnLevel
	if *verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "API",
	})

	client := api.NewCatalogClient(cfg.BaseURL, cfg.CacheTTL, logger)
	client.SetHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})
	aggregator := api.NewDetailAggregator(client, logger)

	probes := []probe{
		{api.EndpointSearchByName + *query, func(ctx context.Context) (int, error) {
			r, err := client.SearchByName(ctx, *query)
			return len(r), err
		}},
		{api.EndpointSearchByLetter + "a", func(ctx context.Context) (int, error) {
			r, err := client.SearchByFirstLetter(ctx, "a")
			return len(r), err
		}},
		{api.EndpointCategories, func(ctx context.Context) (int, error) {
			r, err := client.ListCategories(ctx)
			return len(r), err
		}},
		{api.EndpointAreas, func(ctx context.Context) (int, error) {
			r, err := client.ListAreas(ctx)
			return len(r), err
		}},
		{api.EndpointIngredients, func(ctx context.Context) (int, error) {
			r, err := client.ListIngredients(ctx)
			return len(r), err
		}},
		{api.EndpointByCategory + "Seafood", func(ctx context.Context) (int, error) {
			r, err := client.FindByCategory(ctx, "Seafood")
			if err != nil || len(r) == 0 {
				return len(r), err
			}
			// expand a couple of results to exercise the lookup path
			expanded, err := aggregator.Expand(ctx, r[:min(2, len(r))])
			return len(expanded), err
		}},
		{api.EndpointLookup + "52772", func(ctx context.Context) (int, error) {
			r, err := client.GetByID(ctx, "52772")
			if r == nil {
				return 0, err
			}
			return 1, err
		}},
		{api.EndpointRandom, func(ctx context.Context) (int, error) {
			r, err := client.GetRandom(ctx)
			if r == nil {
				return 0, err
			}
			return 1, err
		}},
		{api.EndpointRandomBatch, func(ctx context.Context) (int, error) {
			return len(client.GetRandomBatch(ctx)), nil
		}},
		{api.EndpointLatest, func(ctx context.Context) (int, error) {
			return len(client.GetLatest(ctx)), nil
		}},
	}

	results := make([]ui.ProbeResult, 0, len(probes))
	err = ui.RunWithSpinner(fmt.Sprintf("Probing %s ...", cfg.BaseURL), func() error {
		ctx := context.Background()
		for _, p := range probes {
			start := time.Now()
			count, err := p.call(ctx)
			results = append(results, ui.ProbeResult{
				Endpoint: p.endpoint,
				Count:    count,
				Elapsed:  time.Since(start),
				Err:      err,
			})
		}
		return nil
	})
	if err != nil {
		ui.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	ui.PrintHeader(os.Stdout, "Catalog probe", cfg.BaseURL)
	ui.PrintProbeTable(os.Stdout, results)

	stats := client.Cache().GetStats()
	fmt.Printf("Cache: %d entries, %d hits, %d misses\n", stats.Size, stats.Hits, stats.Misses)

	for _, r := range results {
		if r.Err != nil {
			os.Exit(1)
		}
	}
}
