package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/recipefinder/internal/api"
	"github.com/thesavant42/recipefinder/internal/models"
)

// ExportFileName returns the export file name for the given day
func ExportFileName(day time.Time) string {
	return fmt.Sprintf("favorites-%s.md", day.Format("2006-01-02"))
}

// ExportFavoritesToMarkdown writes the recipes as a markdown table into dir and returns the file path
func ExportFavoritesToMarkdown(recipes []models.Recipe, dir string) (string, error) {
	now := time.Now()
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	filename := filepath.Join(dir, ExportFileName(now))

	var sb strings.Builder

	sb.WriteString("# Favorite Recipes\n\n")
	sb.WriteString(fmt.Sprintf("**Total Recipes:** %d\n", len(recipes)))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", now.Format("2006-01-02 15:04:05")))

	sb.WriteString("| # | Recipe | Category | Area | Tags | Source |\n")
	sb.WriteString("|---|--------|----------|------|------|--------|\n")

	for i, r := range recipes {
		source := "-"
		if r.Source != "" {
			label, err := api.SourceDomain(r.Source)
			if err != nil {
				label = r.Source
			}
			source = fmt.Sprintf("[%s](%s)", escapeCell(label), r.Source)
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
			i+1,
			escapeCell(r.Name),
			orDash(escapeCell(r.Category)),
			orDash(escapeCell(r.Area)),
			orDash(escapeCell(strings.Join(r.TagList(), ", "))),
			source))
	}

	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}

	return filename, nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
