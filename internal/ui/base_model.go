package ui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// InitTable builds the results table for the current layout, styled and scrolled to the first row.
// The recipe finder rebuilds it whenever the section or its column set changes:
//
//	m.table = InitTable(CalculateColumns(ColumnsFor(items), layout.TableWidth), itemRows(items), layout)
func InitTable(columns []table.Column, rows []table.Row, layout Layout) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)
	t.GotoTop()
	return t
}

// StandardInit asks the terminal for its size so the first frame uses the real layout
func StandardInit() tea.Cmd {
	return tea.WindowSize()
}

// HandleQuitKeys reports whether key quits the app.
// Esc is not a quit key here: it closes the detail view or leaves the search inputs.
func HandleQuitKeys(key string) (bool, tea.Cmd) {
	if key == "q" || key == "ctrl+c" {
		return true, tea.Quit
	}
	return false, nil
}

// HandleNavigationKeys moves the sidebar cursor, stopping at the first and last section
func HandleNavigationKeys(key string, cursor, sections int) int {
	switch key {
	case "up", "k":
		return max(cursor-1, 0)
	case "down", "j":
		return min(cursor+1, sections-1)
	}
	return cursor
}
