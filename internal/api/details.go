package api

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/recipefinder/internal/models"
)

// RecipeLookup resolves a recipe id to a full record (nil when absent)
type RecipeLookup interface {
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
}

// DetailAggregator promotes filter results to full recipes, one lookup at a time
type DetailAggregator struct {
	lookup RecipeLookup
	logger *log.Logger
}

// NewDetailAggregator creates an aggregator backed by lookup
func NewDetailAggregator(lookup RecipeLookup, logger *log.Logger) *DetailAggregator {
	return &DetailAggregator{lookup: lookup, logger: logger}
}

// Expand promotes each filter result to a full recipe, preserving input order
func (a *DetailAggregator) Expand(ctx context.Context, results []models.FilterResult) ([]models.Recipe, error) {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return a.ExpandIDs(ctx, ids)
}

// ExpandIDs looks up each id in order and returns the records that resolved
// Empty ids and ids that no longer resolve are dropped. The first lookup error
// stops the run and is returned with no partial result
func (a *DetailAggregator) ExpandIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0, len(ids))

	for _, id := range ids {
		if id == "" {
			continue
		}

		recipe, err := a.lookup.GetByID(ctx, id)
		if err != nil {
			if a.logger != nil {
				a.logger.Error("Detail lookup failed, aborting", "id", id, "done", len(recipes), "total", len(ids), "error", err)
			}
			return nil, err
		}
		if recipe == nil {
			if a.logger != nil {
				a.logger.Debug("Dropping unresolved recipe", "id", id)
			}
			continue
		}

		recipes = append(recipes, *recipe)
	}

	return recipes, nil
}
