package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thesavant42/recipefinder/internal/controller"
	"github.com/thesavant42/recipefinder/internal/models"
)

// Messages emitted by MessageRenderer, one per rendering signal

type sectionMsg struct {
	state  controller.ViewState
	header controller.Header
}

type loadingMsg struct{}

type resultsMsg struct {
	items []controller.Item
}

type noResultsMsg struct{}

type errorMsg struct {
	message string
}

type detailMsg struct {
	recipe models.Recipe
}

type noticeMsg struct {
	notice controller.Notice
}

type favoriteMsg struct {
	id       string
	favorite bool
}

// rendererBuffer bounds how far the controller can run ahead of the event loop
const rendererBuffer = 64

// MessageRenderer turns controller rendering signals into Bubble Tea messages.
// The controller calls it from command goroutines; the app model drains it with Next.
type MessageRenderer struct {
	msgs chan tea.Msg
}

// NewMessageRenderer creates a renderer with a buffered message queue
func NewMessageRenderer() *MessageRenderer {
	return &MessageRenderer{msgs: make(chan tea.Msg, rendererBuffer)}
}

// Next returns a command that waits for the next rendering message
func (r *MessageRenderer) Next() tea.Cmd {
	return func() tea.Msg {
		return <-r.msgs
	}
}

func (r *MessageRenderer) ShowSection(state controller.ViewState, header controller.Header) {
	r.msgs <- sectionMsg{state: state, header: header}
}

func (r *MessageRenderer) ShowLoading() {
	r.msgs <- loadingMsg{}
}

func (r *MessageRenderer) ShowResults(items []controller.Item) {
	r.msgs <- resultsMsg{items: items}
}

func (r *MessageRenderer) ShowNoResults() {
	r.msgs <- noResultsMsg{}
}

func (r *MessageRenderer) ShowError(message string) {
	r.msgs <- errorMsg{message: message}
}

func (r *MessageRenderer) ShowRecipeDetail(recipe models.Recipe) {
	r.msgs <- detailMsg{recipe: recipe}
}

func (r *MessageRenderer) ShowNotice(notice controller.Notice) {
	r.msgs <- noticeMsg{notice: notice}
}

func (r *MessageRenderer) MarkFavorite(id string, favorite bool) {
	r.msgs <- favoriteMsg{id: id, favorite: favorite}
}

var _ controller.Renderer = (*MessageRenderer)(nil)
