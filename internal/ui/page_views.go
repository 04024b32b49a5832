package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// page_views.go provides a fluent API for building consistent page views.
// Use PageViewBuilder to construct views with a standardized layout.

// PageViewBuilder provides a fluent API for building the main column of a page.
// It handles titles, dividers, spacing, and the sidebar + two-box layout.
//
// Example usage:
//
//	return NewPageView(m.Layout).
//	    Title("Recipe Categories").
//	    Subtitle("Browse recipes by category").
//	    Divider().
//	    Table(m.table).
//	    Status(m.RenderStatus()).
//	    Help("↑/↓: navigate | Enter: open").
//	    Build(sidebar)
type PageViewBuilder struct {
	layout     Layout
	content    strings.Builder
	helpText   string
	hadContent bool
}

// NewPageView creates a new PageViewBuilder with the given layout.
func NewPageView(layout Layout) *PageViewBuilder {
	return &PageViewBuilder{layout: layout}
}

// Title adds a title line (bold white).
func (b *PageViewBuilder) Title(title string) *PageViewBuilder {
	b.content.WriteString(RenderTitle(title))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Subtitle adds a subtitle line (dim gray).
func (b *PageViewBuilder) Subtitle(subtitle string) *PageViewBuilder {
	if subtitle == "" {
		return b
	}
	b.content.WriteString(RenderDim(subtitle))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Divider adds a horizontal divider across the main column.
func (b *PageViewBuilder) Divider() *PageViewBuilder {
	b.content.WriteString(FullWidthDivider(b.layout.MainWidth))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Spacing adds blank lines.
func (b *PageViewBuilder) Spacing(lines int) *PageViewBuilder {
	for i := 0; i < lines; i++ {
		b.content.WriteString("\n")
	}
	return b
}

// QueryInfo adds query/filter information line (accented yellow).
func (b *PageViewBuilder) QueryInfo(info string) *PageViewBuilder {
	if info == "" {
		return b
	}
	b.content.WriteString(AccentStyle.Render(info))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Text adds normal text content.
func (b *PageViewBuilder) Text(text string) *PageViewBuilder {
	b.content.WriteString(NormalStyle.Render(text))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// DimText adds dimmed text content.
func (b *PageViewBuilder) DimText(text string) *PageViewBuilder {
	b.content.WriteString(DimStyle.Render(text))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// CustomContent adds custom pre-rendered content.
func (b *PageViewBuilder) CustomContent(content string) *PageViewBuilder {
	b.content.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.content.WriteString("\n")
	}
	b.hadContent = true
	return b
}

// Table adds a table with full-width selection highlighting.
func (b *PageViewBuilder) Table(t table.Model) *PageViewBuilder {
	if b.hadContent {
		b.content.WriteString("\n")
	}
	b.content.WriteString(RenderTableWithSelection(t, b.layout))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Status adds a pre-rendered status line (if not empty).
func (b *PageViewBuilder) Status(msg string) *PageViewBuilder {
	if msg != "" {
		if b.hadContent {
			b.content.WriteString("\n")
		}
		b.content.WriteString(msg)
		b.content.WriteString("\n")
		b.hadContent = true
	}
	return b
}

// Error adds an error message.
func (b *PageViewBuilder) Error(message string) *PageViewBuilder {
	if message != "" {
		if b.hadContent {
			b.content.WriteString("\n")
		}
		b.content.WriteString(RenderError(message))
		b.content.WriteString("\n")
		b.hadContent = true
	}
	return b
}

// Help sets the help text for the footer box.
func (b *PageViewBuilder) Help(helpText string) *PageViewBuilder {
	b.helpText = helpText
	return b
}

// Build places the sidebar next to the main column and wraps both in the two-box layout.
func (b *PageViewBuilder) Build(sidebar string) string {
	main := lipgloss.NewStyle().
		Width(b.layout.MainWidth).
		MaxHeight(b.layout.ContentHeight).
		Render(b.content.String())

	side := lipgloss.NewStyle().
		Width(SidebarWidth).
		Height(b.layout.ContentHeight).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(ColorTextDim).
		Render(sidebar)

	return TwoBoxView(lipgloss.JoinHorizontal(lipgloss.Top, side, main), b.helpText, b.layout)
}

// BuildContent builds just the main column without any layout.
func (b *PageViewBuilder) BuildContent() string {
	return b.content.String()
}
