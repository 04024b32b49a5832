package ui

import (
	"time"

	"github.com/thesavant42/recipefinder/internal/controller"
)

// page_state.go provides shared state management for TUI pages.
// Embed PageState in your page models to get consistent state handling.

// NoticeDuration is how long a notice stays in the status line
const NoticeDuration = 3 * time.Second

// PageState contains common state that all pages need.
type PageState struct {
	Layout       Layout
	StatusMsg    string
	StatusLevel  controller.NoticeLevel
	StatusExpiry time.Time
	Quitting     bool
}

// NewPageState creates a new PageState with the given layout.
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout}
}

// SetStatus sets a status message that will expire after the given duration.
// If duration is 0, the status message will not expire.
func (p *PageState) SetStatus(msg string, level controller.NoticeLevel, duration time.Duration) {
	p.StatusMsg = msg
	p.StatusLevel = level
	if duration > 0 {
		p.StatusExpiry = time.Now().Add(duration)
	} else {
		p.StatusExpiry = time.Time{}
	}
}

// ClearExpiredStatus clears the status message if it has expired.
func (p *PageState) ClearExpiredStatus() {
	if !p.StatusExpiry.IsZero() && !time.Now().Before(p.StatusExpiry) {
		p.StatusMsg = ""
		p.StatusExpiry = time.Time{}
	}
}

// HasStatus returns true if there is a non-empty status message.
func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// RenderStatus styles the status message by its level
func (p *PageState) RenderStatus() string {
	if p.StatusMsg == "" {
		return ""
	}
	switch p.StatusLevel {
	case controller.NoticeSuccess:
		return SuccessStyle.Render("✓ " + p.StatusMsg)
	case controller.NoticeError:
		return ErrorStyle.Render("✗ " + p.StatusMsg)
	}
	return InfoStyle.Render("• " + p.StatusMsg)
}

// UpdateLayout updates the layout and returns true if it changed.
// Use this in your WindowSizeMsg handler.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout != p.Layout {
		p.Layout = newLayout
		return true
	}
	return false
}
