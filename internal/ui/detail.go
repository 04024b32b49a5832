package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thesavant42/recipefinder/internal/api"
	"github.com/thesavant42/recipefinder/internal/models"
)

// RenderRecipeDetail renders the full recipe for the detail viewport
func RenderRecipeDetail(r models.Recipe, favorite bool, width int) string {
	var b strings.Builder

	title := r.Name
	if favorite {
		title = FavoriteStyle.Render("★ ") + TitleStyle.Render(title)
	} else {
		title = TitleStyle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")

	var meta []string
	if r.Category != "" {
		meta = append(meta, r.Category)
	}
	if r.Area != "" {
		meta = append(meta, r.Area)
	}
	meta = append(meta, "#"+r.ID)
	b.WriteString(RenderDim(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if tags := r.TagList(); len(tags) > 0 {
		b.WriteString(AccentStyle.Render(strings.Join(tags, "  ")))
		b.WriteString("\n")
	}
	b.WriteString(FullWidthDivider(width))
	b.WriteString("\n\n")

	lines := r.DisplayIngredients()
	if len(lines) > 0 {
		b.WriteString(RenderTitle(fmt.Sprintf("Ingredients (%d)", len(lines))))
		b.WriteString("\n")
		widths := DistributeWidth(width-2, []int{40, 60})
		measureCol := lipgloss.NewStyle().Width(widths[0]).Foreground(ColorAccent)
		ingredientCol := lipgloss.NewStyle().Width(widths[1]).Foreground(ColorText)
		for _, line := range lines {
			measure := line.Measure
			if measure == "" {
				measure = "-"
			}
			b.WriteString("  ")
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
				measureCol.Render(measure),
				ingredientCol.Render(line.Ingredient)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if instructions := strings.TrimSpace(r.Instructions); instructions != "" {
		b.WriteString(RenderTitle("Instructions"))
		b.WriteString("\n")
		b.WriteString(NormalStyle.Width(width).Render(normalizeNewlines(instructions)))
		b.WriteString("\n\n")
	}

	if r.Source != "" {
		label := r.Source
		if domain, err := api.SourceDomain(r.Source); err == nil {
			label = domain + "  " + RenderDim(r.Source)
		}
		b.WriteString(RenderNormal("Source: "))
		b.WriteString(label)
		b.WriteString("\n")
	}
	if r.YouTube != "" {
		b.WriteString(RenderNormal("Video:  "))
		b.WriteString(RenderDim(r.YouTube))
		b.WriteString("\n")
	}

	return b.String()
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
