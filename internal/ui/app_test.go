package ui

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesavant42/recipefinder/internal/controller"
	"github.com/thesavant42/recipefinder/internal/models"
)

type fakeController struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeController) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeController) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeController) Navigate(_ context.Context, s controller.Section) {
	f.record("navigate:" + s.String())
}

func (f *fakeController) SearchByName(_ context.Context, q string) { f.record("name:" + q) }

func (f *fakeController) SearchByLetter(_ context.Context, l string) { f.record("letter:" + l) }

func (f *fakeController) SearchByID(_ context.Context, id string) { f.record("id:" + id) }

func (f *fakeController) SelectCategory(_ context.Context, n string) { f.record("category:" + n) }

func (f *fakeController) SelectArea(_ context.Context, n string) { f.record("area:" + n) }

func (f *fakeController) SelectIngredient(_ context.Context, n string) { f.record("ingredient:" + n) }

func (f *fakeController) ShowRecipe(_ context.Context, id string) { f.record("recipe:" + id) }

func (f *fakeController) ToggleFavorite(_ context.Context, id string) { f.record("toggle:" + id) }

func newTestApp(t *testing.T, section controller.Section) (AppModel, *fakeController) {
	t.Helper()
	ctrl := &fakeController{}
	m := NewAppModel(ctrl, NewMessageRenderer(), AppConfig{
		Debounce:       time.Millisecond,
		ExportDir:      t.TempDir(),
		InitialSection: section,
	})
	m = update(t, m, sectionMsg{state: controller.ViewState{Section: section}, header: controller.Header{Title: section.Label()}})
	return m, ctrl
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(AppModel)
	require.True(t, ok)
	return model
}

func updateCmd(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(AppModel)
	require.True(t, ok)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func recipeItem(id, name string, favorite bool) controller.Item {
	return controller.Item{
		Kind:     controller.ItemRecipe,
		Recipe:   &models.Recipe{ID: id, Name: name, Category: "Seafood", Area: "Japanese"},
		Favorite: favorite,
	}
}

func TestMessageRendererPreservesOrder(t *testing.T) {
	r := NewMessageRenderer()
	r.ShowSection(controller.ViewState{Section: controller.Areas}, controller.Header{Title: "Cuisine Areas"})
	r.ShowLoading()
	r.ShowNoResults()

	assert.IsType(t, sectionMsg{}, r.Next()())
	assert.IsType(t, loadingMsg{}, r.Next()())
	assert.IsType(t, noResultsMsg{}, r.Next()())
}

func TestAppRendersResultsAndFavorites(t *testing.T) {
	m, _ := newTestApp(t, controller.Home)

	m = update(t, m, loadingMsg{})
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Loading")

	m = update(t, m, resultsMsg{items: []controller.Item{
		recipeItem("52772", "Teriyaki Chicken Casserole", false),
		recipeItem("52959", "Baked salmon with fennel", true),
	}})
	assert.False(t, m.loading)
	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0][0])
	assert.Equal(t, "★", rows[1][0])

	m = update(t, m, favoriteMsg{id: "52772", favorite: true})
	assert.Equal(t, "★", m.table.Rows()[0][0])
	assert.True(t, m.items[0].Favorite)
}

func TestAppErrorOutsideLoadKeepsResults(t *testing.T) {
	m, _ := newTestApp(t, controller.Home)
	m = update(t, m, resultsMsg{items: []controller.Item{recipeItem("1", "Soup", false)}})

	m = update(t, m, errorMsg{message: "Failed to load recipe details. Please try again."})
	assert.Len(t, m.items, 1)
	assert.Empty(t, m.errMsg)
	assert.Equal(t, "Failed to load recipe details. Please try again.", m.StatusMsg)
	assert.Equal(t, controller.NoticeError, m.StatusLevel)
}

func TestAppErrorDuringLoadReplacesResults(t *testing.T) {
	m, _ := newTestApp(t, controller.Categories)
	m = update(t, m, loadingMsg{})
	m = update(t, m, errorMsg{message: "Failed to load categories. Please try again later."})

	assert.False(t, m.loading)
	assert.Empty(t, m.items)
	assert.Contains(t, m.View(), "Failed to load categories")
}

func TestAppDebouncesSearchInput(t *testing.T) {
	m, ctrl := newTestApp(t, controller.Search)
	m.focusInput(inputName)

	m = update(t, m, runes("a"))
	m = update(t, m, runes("b"))
	assert.Equal(t, 2, m.seq[inputName])

	m, cmd := updateCmd(t, m, debounceMsg{input: inputName, seq: 1})
	assert.Nil(t, cmd, "superseded tick must not search")

	_, cmd = updateCmd(t, m, debounceMsg{input: inputName, seq: 2})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, []string{"name:ab"}, ctrl.Calls())
}

func TestAppSearchInputsRouteToTheirOperation(t *testing.T) {
	tests := []struct {
		name  string
		input int
		typed string
		want  string
	}{
		{"name", inputName, "Arrabiata", "name:Arrabiata"},
		{"letter", inputLetter, "b", "letter:b"},
		{"id", inputID, "52772", "id:52772"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newTestApp(t, controller.Search)
			m.focusInput(tt.input)
			m = update(t, m, runes(tt.typed))

			_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			cmd()
			assert.Equal(t, []string{tt.want}, ctrl.Calls())
		})
	}
}

func TestAppEnterOnItemDrillsDown(t *testing.T) {
	tests := []struct {
		name string
		item controller.Item
		want string
	}{
		{"category", controller.Item{Kind: controller.ItemCategory, Category: &models.Category{Name: "Seafood"}}, "category:Seafood"},
		{"area", controller.Item{Kind: controller.ItemArea, Area: &models.Area{Name: "Italian"}}, "area:Italian"},
		{"ingredient", controller.Item{Kind: controller.ItemIngredient, Ingredient: &models.Ingredient{Name: "Garlic"}}, "ingredient:Garlic"},
		{"recipe", recipeItem("52772", "Teriyaki", false), "recipe:52772"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newTestApp(t, controller.Home)
			m = update(t, m, resultsMsg{items: []controller.Item{tt.item}})
			m.setFocus(focusResults)

			_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			cmd()
			assert.Equal(t, []string{tt.want}, ctrl.Calls())
		})
	}
}

func TestAppToggleFavoriteFromResults(t *testing.T) {
	m, ctrl := newTestApp(t, controller.Home)
	m = update(t, m, resultsMsg{items: []controller.Item{recipeItem("52772", "Teriyaki", false)}})
	m.setFocus(focusResults)

	_, cmd := updateCmd(t, m, runes("f"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"toggle:52772"}, ctrl.Calls())
}

func TestAppDetailViewAndBack(t *testing.T) {
	m, _ := newTestApp(t, controller.Home)
	m = update(t, m, resultsMsg{items: []controller.Item{recipeItem("52772", "Teriyaki", true)}})

	m = update(t, m, detailMsg{recipe: models.Recipe{
		ID:     "52772",
		Name:   "Teriyaki Chicken Casserole",
		Source: "https://www.bbcgoodfood.com/recipes/teriyaki",
	}})
	assert.Equal(t, focusDetail, m.focus)
	assert.True(t, m.detailFav)
	assert.Contains(t, m.View(), "Teriyaki Chicken Casserole")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.detail)
	assert.Equal(t, focusResults, m.focus)
}

func TestAppPendingSearchDroppedAfterLeavingSearch(t *testing.T) {
	m, ctrl := newTestApp(t, controller.Search)
	m.focusInput(inputName)

	m = update(t, m, runes("a"))
	m = update(t, m, runes("b"))
	pending := m.seq[inputName]

	m = update(t, m, sectionMsg{state: controller.ViewState{Section: controller.Categories}})
	assert.NotEqual(t, pending, m.seq[inputName])

	m, cmd := updateCmd(t, m, debounceMsg{input: inputName, seq: pending})
	assert.Nil(t, cmd)
	assert.Equal(t, controller.Categories, m.section)

	// a tick carrying the current sequence is still ignored outside Search
	_, cmd = updateCmd(t, m, debounceMsg{input: inputName, seq: m.seq[inputName]})
	assert.Nil(t, cmd)
	assert.Empty(t, ctrl.Calls())
}

func TestAppSectionChangeClosesDetail(t *testing.T) {
	m, _ := newTestApp(t, controller.Home)
	m = update(t, m, detailMsg{recipe: models.Recipe{ID: "1", Name: "Soup"}})
	require.NotNil(t, m.detail)

	m = update(t, m, sectionMsg{state: controller.ViewState{Section: controller.Areas}})
	assert.Nil(t, m.detail)
	assert.Equal(t, controller.Areas, m.section)
	assert.Equal(t, sectionIndex(controller.Areas), m.navCursor)
}

func TestAppExportFavorites(t *testing.T) {
	m, _ := newTestApp(t, controller.Favorites)
	m = update(t, m, resultsMsg{items: []controller.Item{
		recipeItem("52772", "Teriyaki Chicken Casserole", true),
		recipeItem("52959", "Baked salmon", true),
	}})
	m.setFocus(focusResults)

	m, cmd := updateCmd(t, m, runes("e"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, 2, msg.count)

	data, err := os.ReadFile(msg.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Baked salmon")

	m = update(t, m, msg)
	assert.True(t, strings.HasPrefix(m.StatusMsg, "Exported 2 recipes"))
}

func TestAppNoticeSetsStatus(t *testing.T) {
	m, _ := newTestApp(t, controller.Home)
	m = update(t, m, noticeMsg{notice: controller.Notice{Level: controller.NoticeSuccess, Message: "Recipe added to favorites!"}})

	assert.Equal(t, "Recipe added to favorites!", m.StatusMsg)
	assert.Contains(t, m.RenderStatus(), "Recipe added to favorites!")
}

func TestAppSidebarNavigates(t *testing.T) {
	m, ctrl := newTestApp(t, controller.Home)
	m.setFocus(focusSidebar)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.navCursor)

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"navigate:categories"}, ctrl.Calls())
	assert.Equal(t, focusResults, m.focus)
}

func TestAppContactValidation(t *testing.T) {
	m, _ := newTestApp(t, controller.Contact)
	require.NotNil(t, m.form)
	assert.Equal(t, focusForm, m.focus)

	*m.contact = ContactSubmission{Name: "J", Email: "nope", Password: "short", Confirm: "other", Send: true}
	m, _ = submit(t, m)
	require.Len(t, m.formErrs, 4)
	assert.False(t, m.sending)

	*m.contact = ContactSubmission{Name: "Julia", Email: "julia@example.com", Password: "abc12345", Confirm: "abc12345", Send: true}
	m, cmd := submit(t, m)
	assert.Empty(t, m.formErrs)
	assert.True(t, m.sending)
	assert.NotNil(t, cmd)

	m = update(t, m, contactSentMsg{})
	assert.False(t, m.sending)
	assert.Equal(t, MsgContactSent, m.StatusMsg)
	assert.Equal(t, ContactSubmission{}, *m.contact)
}

func submit(t *testing.T, m AppModel) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.submitContact()
	model, ok := next.(AppModel)
	require.True(t, ok)
	return model, cmd
}
