package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan   = lipgloss.Color("86")
	white  = lipgloss.Color("255")
	green  = lipgloss.Color("82")
	orange = lipgloss.Color("208")

	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(orange).
				MarginBottom(1)

	reportSubtitleStyle = lipgloss.NewStyle().
				Foreground(cyan)

	reportHeaderStyle = lipgloss.NewStyle().
				Foreground(orange).
				Bold(true)

	reportRowStyle = lipgloss.NewStyle().
			Foreground(white)

	reportBorderStyle = lipgloss.NewStyle().
				Foreground(orange)
)

// ProbeResult is the outcome of calling one catalog endpoint
type ProbeResult struct {
	Endpoint string
	Count    int
	Elapsed  time.Duration
	Err      error
}

// PrintHeader prints a styled header for a CLI report
func PrintHeader(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, reportTitleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, reportSubtitleStyle.Render(subtitle))
	}
	fmt.Fprintln(w)
}

// PrintProbeTable prints one row per probed endpoint.
//
// This is a CLI report (non-interactive), so the table structure is plain string
// formatting; lipgloss only colors the text. Interactive tables use bubbles/table.
func PrintProbeTable(w io.Writer, results []ProbeResult) {
	colWidths := []int{28, 7, 9, 40} // Endpoint, Count, Time, Status
	totalWidth := 2
	for _, cw := range colWidths {
		totalWidth += cw + 3
	}
	totalWidth--

	separator := strings.Repeat("─", totalWidth-2)

	fmt.Fprintln(w, reportBorderStyle.Render("┌"+separator+"┐"))
	fmt.Fprintln(w, reportHeaderStyle.Render(fmt.Sprintf("│ %-*s │ %-*s │ %-*s │ %-*s │",
		colWidths[0], "Endpoint",
		colWidths[1], "Count",
		colWidths[2], "Time",
		colWidths[3], "Status")))
	fmt.Fprintln(w, reportBorderStyle.Render("├"+separator+"┤"))

	for _, r := range results {
		status := "ok"
		style := reportRowStyle
		if r.Err != nil {
			status = r.Err.Error()
			style = ErrorStyle
		}
		row := fmt.Sprintf("│ %-*s │ %*d │ %*s │ %-*s │",
			colWidths[0], truncateToWidth(r.Endpoint, colWidths[0]),
			colWidths[1], r.Count,
			colWidths[2], r.Elapsed.Round(time.Millisecond),
			colWidths[3], truncateToWidth(status, colWidths[3]))
		fmt.Fprintln(w, style.Render(row))
	}

	fmt.Fprintln(w, reportBorderStyle.Render("└"+separator+"┘"))
	fmt.Fprintln(w)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	successStyle := lipgloss.NewStyle().
		Foreground(green).
		Bold(true)
	fmt.Fprintln(w, successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: "+message))
}
