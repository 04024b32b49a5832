package ui

// columns.go provides generic column width calculation for bubbles/table.
// Use ColumnSpec and CalculateColumns() instead of duplicating percentage-based math.

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/thesavant42/recipefinder/internal/controller"
)

// =============================================================================
// Column Specification Types
// =============================================================================

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// =============================================================================
// Column Calculation
// =============================================================================

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
//
// Example:
//
//	columns := CalculateColumns([]ColumnSpec{
//	    {Title: "Name", FlexRatio: 30, MinWidth: 20},
//	    {Title: "Area", FlexRatio: 40, MinWidth: 25},
//	    {Title: "★", FixedWidth: 3},
//	}, layout.TableWidth)
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 50 {
		totalWidth = 50
	}

	// First pass: allocate fixed widths and sum flex ratios
	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	// each column carries two cells of padding in bubbles/table
	remaining := totalWidth - fixedTotal - 2*len(specs)
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}

		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}

		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// =============================================================================
// Column Presets
// =============================================================================

// RecipeColumns lists recipes with a favorite marker
func RecipeColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "★", FixedWidth: 2},
		{Title: "Recipe", FlexRatio: 50, MinWidth: 20},
		{Title: "Category", FlexRatio: 20, MinWidth: 10},
		{Title: "Area", FlexRatio: 15, MinWidth: 10},
		{Title: "ID", FixedWidth: 7},
	}
}

// CategoryColumns lists categories with a short description
func CategoryColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Category", FlexRatio: 25, MinWidth: 12},
		{Title: "Description", FlexRatio: 75, MinWidth: 20},
	}
}

// SingleColumnSpec creates a spec for single-column tables (areas, ingredients).
func SingleColumnSpec(title string) []ColumnSpec {
	return []ColumnSpec{
		{Title: title, FlexRatio: 100},
	}
}

// ColumnsFor picks the preset matching the kind of the first item
func ColumnsFor(items []controller.Item) []ColumnSpec {
	if len(items) == 0 {
		return RecipeColumns()
	}
	switch items[0].Kind {
	case controller.ItemCategory:
		return CategoryColumns()
	case controller.ItemArea:
		return SingleColumnSpec("Area")
	case controller.ItemIngredient:
		return SingleColumnSpec("Ingredient")
	}
	return RecipeColumns()
}

// DistributeWidth splits totalWidth by ratio.
// Returns widths in the same order as ratios.
func DistributeWidth(totalWidth int, ratios []int) []int {
	if len(ratios) == 0 {
		return nil
	}

	totalRatio := 0
	for _, r := range ratios {
		totalRatio += r
	}

	widths := make([]int, len(ratios))
	if totalRatio == 0 {
		for i := range widths {
			widths[i] = totalWidth / len(ratios)
		}
		return widths
	}

	for i, r := range ratios {
		widths[i] = totalWidth * r / totalRatio
	}
	return widths
}
