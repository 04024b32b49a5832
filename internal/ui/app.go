package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/thesavant42/recipefinder/internal/controller"
	"github.com/thesavant42/recipefinder/internal/models"
)

// Controller is the part of the view controller the app drives.
// Every method blocks on the network, so the app only calls them from commands.
type Controller interface {
	Navigate(ctx context.Context, section controller.Section)
	SearchByName(ctx context.Context, query string)
	SearchByLetter(ctx context.Context, letter string)
	SearchByID(ctx context.Context, id string)
	SelectCategory(ctx context.Context, name string)
	SelectArea(ctx context.Context, name string)
	SelectIngredient(ctx context.Context, name string)
	ShowRecipe(ctx context.Context, id string)
	ToggleFavorite(ctx context.Context, id string)
}

// AppConfig tunes the interactive application
type AppConfig struct {
	Debounce       time.Duration
	ExportDir      string
	InitialSection controller.Section
	Logger         *log.Logger
}

type focusArea int

const (
	focusSidebar focusArea = iota
	focusResults
	focusInputs
	focusDetail
	focusForm
)

type debounceMsg struct {
	input int
	seq   int
}

type clearStatusMsg struct{}

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

type contactSentMsg struct{}

// contactSendDelay simulates the submission round trip
const contactSendDelay = 2 * time.Second

// AppModel is the interactive recipe browser
type AppModel struct {
	PageState

	ctrl     Controller
	renderer *MessageRenderer
	cfg      AppConfig
	ctx      context.Context

	section controller.Section
	header  controller.Header
	query   string
	items   []controller.Item
	loading bool
	noItems bool
	errMsg  string

	focus       focusArea
	navCursor   int
	table       table.Model
	inputs      []textinput.Model
	activeInput int
	seq         []int
	spinner     spinner.Model

	viewport  viewport.Model
	detail    *models.Recipe
	detailFav bool

	contact  *ContactSubmission
	form     *huh.Form
	formErrs []*ValidationError
	sending  bool
}

// NewAppModel wires the app to a controller and the renderer that controller writes to
func NewAppModel(ctrl Controller, renderer *MessageRenderer, cfg AppConfig) AppModel {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 300 * time.Millisecond
	}
	layout := DefaultLayout()
	m := AppModel{
		PageState: NewPageState(layout),
		ctrl:      ctrl,
		renderer:  renderer,
		cfg:       cfg,
		ctx:       context.Background(),
		section:   cfg.InitialSection,
		navCursor: sectionIndex(cfg.InitialSection),
		inputs:    newSearchInputs(layout.MainWidth),
		seq:       make([]int, inputCount),
		spinner:   NewAppSpinner(),
		viewport:  viewport.New(layout.MainWidth, detailHeight(layout)),
	}
	m.table = InitTable(CalculateColumns(RecipeColumns(), layout.TableWidth), nil, layout)
	m.table.Blur()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		StandardInit(),
		m.renderer.Next(),
		m.navigate(m.cfg.InitialSection),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.ClearExpiredStatus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			m.resize()
		}
		return m, nil

	case sectionMsg:
		cmd := m.applySection(msg)
		return m, tea.Batch(m.renderer.Next(), cmd)

	case loadingMsg:
		m.loading = true
		m.noItems = false
		m.errMsg = ""
		m.items = nil
		return m, tea.Batch(m.renderer.Next(), m.spinner.Tick)

	case resultsMsg:
		m.loading = false
		m.noItems = false
		m.errMsg = ""
		m.items = msg.items
		m.refreshTable(false)
		return m, m.renderer.Next()

	case noResultsMsg:
		m.loading = false
		m.noItems = true
		m.errMsg = ""
		m.items = nil
		m.refreshTable(false)
		return m, m.renderer.Next()

	case errorMsg:
		// a failure outside a load (recipe detail) must not wipe the list
		if !m.loading {
			m.SetStatus(msg.message, controller.NoticeError, NoticeDuration)
			return m, tea.Batch(m.renderer.Next(), clearStatusAfter(NoticeDuration))
		}
		m.loading = false
		m.errMsg = msg.message
		m.items = nil
		m.refreshTable(false)
		return m, m.renderer.Next()

	case detailMsg:
		recipe := msg.recipe
		m.detail = &recipe
		m.detailFav = m.isFavorite(recipe.ID)
		m.refreshDetail()
		m.viewport.GotoTop()
		m.setFocus(focusDetail)
		return m, m.renderer.Next()

	case noticeMsg:
		m.SetStatus(msg.notice.Message, msg.notice.Level, NoticeDuration)
		return m, tea.Batch(m.renderer.Next(), clearStatusAfter(NoticeDuration))

	case favoriteMsg:
		m.markFavorite(msg.id, msg.favorite)
		return m, m.renderer.Next()

	case debounceMsg:
		if msg.seq != m.seq[msg.input] || m.section != controller.Search {
			return m, nil
		}
		return m, m.search(msg.input)

	case exportDoneMsg:
		if msg.err != nil {
			if m.cfg.Logger != nil {
				m.cfg.Logger.Error("Export failed", "err", msg.err)
			}
			m.SetStatus("Export failed", controller.NoticeError, NoticeDuration)
		} else {
			m.SetStatus(fmt.Sprintf("Exported %d recipes to %s", msg.count, msg.path), controller.NoticeSuccess, NoticeDuration)
		}
		return m, clearStatusAfter(NoticeDuration)

	case contactSentMsg:
		m.sending = false
		m.resetContactForm()
		m.SetStatus(MsgContactSent, controller.NoticeSuccess, NoticeDuration)
		return m, tea.Batch(m.form.Init(), clearStatusAfter(NoticeDuration))

	case clearStatusMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusForm && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.focus {
	case focusForm:
		if key == "esc" {
			m.setFocus(focusSidebar)
			return m, nil
		}
		return m.updateForm(msg)

	case focusInputs:
		return m.handleInputKey(msg)

	case focusDetail:
		switch key {
		case "esc", "backspace", "left", "h":
			m.detail = nil
			m.setFocus(focusResults)
			return m, nil
		case "f":
			return m, m.toggleFavorite(m.detail.ID)
		case "q":
			m.Quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case focusSidebar:
		if quit, cmd := HandleQuitKeys(key); quit {
			m.Quitting = true
			return m, cmd
		}
		switch key {
		case "enter", "right", "l":
			target := controller.AllSections[m.navCursor]
			m.detail = nil
			m.setFocus(m.contentFocus(target))
			return m, m.navigate(target)
		case "tab":
			m.setFocus(m.contentFocus(m.section))
			return m, nil
		case "/":
			return m.openSearch()
		}
		m.navCursor = HandleNavigationKeys(key, m.navCursor, len(controller.AllSections))
		return m, nil
	}

	// focusResults
	if quit, cmd := HandleQuitKeys(key); quit {
		m.Quitting = true
		return m, cmd
	}
	switch key {
	case "esc", "tab", "left", "h":
		m.setFocus(focusSidebar)
		return m, nil
	case "/":
		return m.openSearch()
	case "enter":
		return m, m.activate()
	case "f":
		if item, ok := m.selectedItem(); ok && item.Kind == controller.ItemRecipe {
			return m, m.toggleFavorite(item.Recipe.ID)
		}
		return m, nil
	case "e":
		if m.section == controller.Favorites {
			return m, m.export()
		}
		return m, nil
	case "r":
		return m, m.navigate(m.section)
	case "up", "k":
		if m.section == controller.Search && m.table.Cursor() == 0 {
			m.setFocus(focusInputs)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m AppModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setFocus(focusSidebar)
		return m, nil
	case "down":
		if len(m.items) > 0 {
			m.setFocus(focusResults)
		}
		return m, nil
	case "tab":
		m.focusInput((m.activeInput + 1) % inputCount)
		return m, nil
	case "shift+tab":
		m.focusInput((m.activeInput + inputCount - 1) % inputCount)
		return m, nil
	case "enter":
		// supersede any pending debounce tick and search right away
		m.seq[m.activeInput]++
		return m, m.search(m.activeInput)
	}

	before := m.inputs[m.activeInput].Value()
	var cmd tea.Cmd
	m.inputs[m.activeInput], cmd = m.inputs[m.activeInput].Update(msg)
	if m.inputs[m.activeInput].Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounce(m.activeInput))
}

func (m AppModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.sending {
		return m, nil
	}
	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitContact()
	case huh.StateAborted:
		m.resetContactForm()
		m.setFocus(focusSidebar)
		return m, m.form.Init()
	}
	return m, cmd
}

func (m AppModel) submitContact() (tea.Model, tea.Cmd) {
	if !m.contact.Send {
		m.resetContactForm()
		m.SetStatus("Message discarded", controller.NoticeInfo, NoticeDuration)
		return m, tea.Batch(m.form.Init(), clearStatusAfter(NoticeDuration))
	}

	if errs := ValidateContact(*m.contact); len(errs) > 0 {
		m.formErrs = errs
		m.contact.Send = false
		m.form = NewContactForm(m.contact, m.Layout.MainWidth)
		return m, m.form.Init()
	}

	m.formErrs = nil
	m.sending = true
	m.SetStatus("Sending...", controller.NoticeInfo, 0)
	return m, tea.Tick(contactSendDelay, func(time.Time) tea.Msg { return contactSentMsg{} })
}

func (m *AppModel) resetContactForm() {
	m.contact = &ContactSubmission{}
	m.formErrs = nil
	m.form = NewContactForm(m.contact, m.Layout.MainWidth)
}

// applySection resets the content area for a new section
func (m *AppModel) applySection(msg sectionMsg) tea.Cmd {
	m.section = msg.state.Section
	m.header = msg.header
	m.query = msg.state.LastQuery
	m.navCursor = sectionIndex(m.section)
	m.items = nil
	m.loading = false
	m.noItems = false
	m.errMsg = ""
	m.detail = nil
	m.refreshTable(false)

	// ticks queued while typing must not pull the app back into Search
	if m.section != controller.Search {
		for i := range m.seq {
			m.seq[i]++
		}
	}

	switch {
	case m.section == controller.Contact:
		m.resetContactForm()
		m.setFocus(focusForm)
		return m.form.Init()
	case m.focus == focusForm:
		m.form = nil
		m.setFocus(focusSidebar)
	case m.focus == focusInputs && m.section != controller.Search:
		m.setFocus(focusResults)
	case m.focus == focusDetail:
		m.setFocus(focusResults)
	}
	return nil
}

func (m *AppModel) setFocus(f focusArea) {
	m.focus = f
	if f == focusResults {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	for i := range m.inputs {
		if f == focusInputs && i == m.activeInput {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *AppModel) focusInput(i int) {
	m.activeInput = i
	m.setFocus(focusInputs)
}

func (m AppModel) contentFocus(s controller.Section) focusArea {
	switch s {
	case controller.Search:
		return focusInputs
	case controller.Contact:
		return focusForm
	}
	return focusResults
}

func (m AppModel) openSearch() (tea.Model, tea.Cmd) {
	m.detail = nil
	m.focusInput(inputName)
	if m.section == controller.Search {
		return m, nil
	}
	return m, m.navigate(controller.Search)
}

func (m *AppModel) resize() {
	resizeSearchInputs(m.inputs, m.Layout.MainWidth)
	m.viewport.Width = m.Layout.MainWidth
	m.viewport.Height = detailHeight(m.Layout)
	m.refreshTable(true)
	if m.detail != nil {
		m.refreshDetail()
	}
	if m.form != nil {
		m.form = m.form.WithWidth(m.Layout.MainWidth)
	}
}

func detailHeight(l Layout) int {
	h := l.ContentHeight - HeaderLines - 2
	if h < 5 {
		h = 5
	}
	return h
}

// refreshTable rebuilds the results table from m.items
func (m *AppModel) refreshTable(keepCursor bool) {
	cursor := m.table.Cursor()
	columns := CalculateColumns(ColumnsFor(m.items), m.Layout.TableWidth)
	m.table = InitTable(columns, itemRows(m.items), m.Layout)
	if keepCursor && cursor < len(m.items) {
		m.table.SetCursor(cursor)
	}
	if m.focus != focusResults {
		m.table.Blur()
	}
}

func (m *AppModel) refreshDetail() {
	m.viewport.SetContent(RenderRecipeDetail(*m.detail, m.detailFav, m.Layout.MainWidth-2))
}

func (m *AppModel) markFavorite(id string, favorite bool) {
	changed := false
	for i := range m.items {
		if m.items[i].Kind == controller.ItemRecipe && m.items[i].Recipe.ID == id {
			m.items[i].Favorite = favorite
			changed = true
		}
	}
	if changed {
		m.refreshTable(true)
	}
	if m.detail != nil && m.detail.ID == id {
		m.detailFav = favorite
		m.refreshDetail()
	}
}

func (m AppModel) isFavorite(id string) bool {
	for _, item := range m.items {
		if item.Kind == controller.ItemRecipe && item.Recipe.ID == id {
			return item.Favorite
		}
	}
	return false
}

func (m AppModel) selectedItem() (controller.Item, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.items) {
		return controller.Item{}, false
	}
	return m.items[cursor], true
}

// Commands; each one runs a blocking controller call off the event loop

func (m AppModel) navigate(s controller.Section) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.Navigate(ctx, s)
		return nil
	}
}

func (m AppModel) debounce(input int) tea.Cmd {
	m.seq[input]++
	seq := m.seq[input]
	return tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{input: input, seq: seq}
	})
}

func (m AppModel) search(input int) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	value := sanitizeInput(m.inputs[input].Value())
	switch input {
	case inputLetter:
		return func() tea.Msg {
			ctrl.SearchByLetter(ctx, value)
			return nil
		}
	case inputID:
		return func() tea.Msg {
			ctrl.SearchByID(ctx, value)
			return nil
		}
	}
	return func() tea.Msg {
		ctrl.SearchByName(ctx, value)
		return nil
	}
}

func (m AppModel) activate() tea.Cmd {
	item, ok := m.selectedItem()
	if !ok {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	switch item.Kind {
	case controller.ItemCategory:
		name := item.Category.Name
		return func() tea.Msg {
			ctrl.SelectCategory(ctx, name)
			return nil
		}
	case controller.ItemArea:
		name := item.Area.Name
		return func() tea.Msg {
			ctrl.SelectArea(ctx, name)
			return nil
		}
	case controller.ItemIngredient:
		name := item.Ingredient.Name
		return func() tea.Msg {
			ctrl.SelectIngredient(ctx, name)
			return nil
		}
	}
	id := item.Recipe.ID
	return func() tea.Msg {
		ctrl.ShowRecipe(ctx, id)
		return nil
	}
}

func (m AppModel) toggleFavorite(id string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.ToggleFavorite(ctx, id)
		return nil
	}
}

func (m AppModel) export() tea.Cmd {
	recipes := make([]models.Recipe, 0, len(m.items))
	for _, item := range m.items {
		if item.Kind == controller.ItemRecipe {
			recipes = append(recipes, *item.Recipe)
		}
	}
	dir := m.cfg.ExportDir
	return func() tea.Msg {
		path, err := ExportFavoritesToMarkdown(recipes, dir)
		return exportDoneMsg{path: path, count: len(recipes), err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// View

func (m AppModel) View() string {
	if m.Quitting {
		return ""
	}

	b := NewPageView(m.Layout).
		Title(m.header.Title).
		Subtitle(m.header.Subtitle).
		Divider()

	switch {
	case m.section == controller.Contact && m.form != nil:
		b.CustomContent(m.form.View()).
			CustomContent(renderValidationErrors(m.formErrs))
	case m.detail != nil:
		b.CustomContent(m.viewport.View())
	default:
		if m.section == controller.Search {
			b.CustomContent(renderSearchInputs(m.inputs, m.activeInput, m.focus == focusInputs))
		}
		switch {
		case m.loading:
			b.Text(m.spinner.View() + " Loading...")
		case m.errMsg != "":
			b.Error(m.errMsg)
		case m.noItems:
			b.DimText(m.emptyText())
		case len(m.items) > 0:
			b.QueryInfo(m.resultInfo()).Table(m.table)
		}
	}

	return b.Status(m.RenderStatus()).
		Help(m.helpText()).
		Build(m.renderSidebar())
}

func (m AppModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString(AccentStyle.Render(" 🍳 Recipe Finder"))
	b.WriteString("\n\n")
	for i, s := range controller.AllSections {
		label := s.Label()
		if m.focus == focusSidebar && i == m.navCursor {
			label = "› " + label
		} else {
			label = "  " + label
		}
		if s == m.section {
			b.WriteString(NavActiveStyle.Width(SidebarWidth).Render(label))
		} else {
			b.WriteString(NavInactiveStyle.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m AppModel) resultInfo() string {
	noun := "results"
	if len(m.items) == 1 {
		noun = "result"
	}
	if m.query != "" {
		return fmt.Sprintf("%d %s for %q", len(m.items), noun, m.query)
	}
	return fmt.Sprintf("%d %s", len(m.items), noun)
}

func (m AppModel) emptyText() string {
	switch m.section {
	case controller.Home:
		return "Press / to search, or pick a section to start exploring."
	case controller.Search:
		if m.query == "" {
			return "Type a recipe name, a first letter or a recipe ID."
		}
	case controller.Favorites:
		return "No favorite recipes yet. Press f on any recipe to save it."
	}
	return "No recipes found. Try a different search."
}

func (m AppModel) helpText() string {
	switch m.focus {
	case focusSidebar:
		return "↑/↓: navigate | Enter: open | Tab: results | /: search | q: quit"
	case focusInputs:
		return "type to search | Tab: next field | ↓: results | Enter: search now | Esc: menu"
	case focusDetail:
		return "↑/↓: scroll | f: favorite | Esc: back | q: quit"
	case focusForm:
		return "Enter: next field | Esc: menu | ctrl+c: quit"
	}
	help := "↑/↓: navigate | Enter: open | f: favorite | r: reload | Esc: menu | q: quit"
	if m.section == controller.Favorites {
		help = "↑/↓: navigate | Enter: open | f: remove | e: export | Esc: menu | q: quit"
	}
	return help
}

func itemRows(items []controller.Item) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		switch item.Kind {
		case controller.ItemCategory:
			rows = append(rows, table.Row{item.Category.Name, firstLine(item.Category.Description)})
		case controller.ItemArea:
			rows = append(rows, table.Row{item.Area.Name})
		case controller.ItemIngredient:
			rows = append(rows, table.Row{item.Ingredient.Name})
		default:
			star := ""
			if item.Favorite {
				star = "★"
			}
			r := item.Recipe
			rows = append(rows, table.Row{star, r.Name, r.Category, r.Area, r.ID})
		}
	}
	return rows
}

func firstLine(s string) string {
	s = strings.TrimSpace(normalizeNewlines(s))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

func sectionIndex(s controller.Section) int {
	for i, candidate := range controller.AllSections {
		if candidate == s {
			return i
		}
	}
	return 0
}

// RunApp starts the interactive application and blocks until it exits
func RunApp(ctrl Controller, renderer *MessageRenderer, cfg AppConfig) error {
	p := tea.NewProgram(NewAppModel(ctrl, renderer, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run recipe finder: %w", err)
	}
	return nil
}
