package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SplashDuration is how long the splash screen stays up unless a key is pressed
const SplashDuration = 1500 * time.Millisecond

// SplashModel is the TUI model for the splash screen
type SplashModel struct {
	width  int
	height int
	done   bool
}

type splashTimeoutMsg struct{}

func waitForTimeout() tea.Cmd {
	return tea.Tick(SplashDuration, func(t time.Time) tea.Msg {
		return splashTimeoutMsg{}
	})
}

func (m SplashModel) Init() tea.Cmd {
	return tea.Batch(waitForTimeout(), StandardInit())
}

func (m SplashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg, splashTimeoutMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SplashModel) View() string {
	if m.done {
		return ""
	}

	layout := NewLayout(m.width, m.height)
	height := layout.ViewportHeight - 2

	lines := []string{
		AccentStyle.Render("🍳  Recipe Finder Pro"),
		"",
		RenderDim("Discover culinary excellence from around the world"),
	}

	var b strings.Builder
	top := (height - len(lines)) / 2
	b.WriteString(strings.Repeat("\n", max(top, 0)))
	for _, line := range lines {
		b.WriteString(CenterText(line, layout.InnerWidth))
		b.WriteString("\n")
	}

	return BorderStyle.
		Width(layout.InnerWidth).
		Height(height).
		Render(b.String())
}

// ShowSplash displays the splash screen briefly
func ShowSplash() error {
	p := tea.NewProgram(SplashModel{width: DefaultWidth, height: DefaultHeight}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("splash screen error: %w", err)
	}
	return nil
}
