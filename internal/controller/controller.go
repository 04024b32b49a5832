package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/recipefinder/internal/api"
	"github.com/thesavant42/recipefinder/internal/favorites"
	"github.com/thesavant42/recipefinder/internal/models"
)

// Catalog is the subset of the catalog client the controller needs
type Catalog interface {
	SearchByName(ctx context.Context, query string) ([]models.Recipe, error)
	SearchByFirstLetter(ctx context.Context, letter string) ([]models.Recipe, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListAreas(ctx context.Context) ([]models.Area, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	FindByCategory(ctx context.Context, name string) ([]models.FilterResult, error)
	FindByArea(ctx context.Context, name string) ([]models.FilterResult, error)
	FindByIngredient(ctx context.Context, name string) ([]models.FilterResult, error)
	GetRandom(ctx context.Context) (*models.Recipe, error)
	GetRandomBatch(ctx context.Context) []models.Recipe
	GetLatest(ctx context.Context) []models.Recipe
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
}

// FavoritesStore is the subset of the favorites store the controller needs
type FavoritesStore interface {
	List() []models.Recipe
	Contains(id string) bool
	Toggle(ctx context.Context, id string, fetch favorites.FetchFunc) (favorites.ToggleResult, error)
}

// Controller maps navigation and search requests onto catalog calls and renderer signals
//
// Each transition bumps a generation counter. A load captures the generation it
// started under and its result is dropped if another transition happened before
// it resolved, so only the most recently requested view is ever rendered.
// Network calls run without the lock; the staleness check and the render happen
// under it.
type Controller struct {
	mu         sync.Mutex
	state      ViewState
	generation uint64

	catalog   Catalog
	details   *api.DetailAggregator
	favorites FavoritesStore
	renderer  Renderer
	logger    *log.Logger
}

// New creates a controller in the Home section; nothing is loaded until Navigate is called
func New(catalog Catalog, favs FavoritesStore, renderer Renderer, logger *log.Logger) *Controller {
	return &Controller{
		state:     ViewState{Section: Home},
		catalog:   catalog,
		details:   api.NewDetailAggregator(catalog, logger),
		favorites: favs,
		renderer:  renderer,
		logger:    logger,
	}
}

// State returns the current view state
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns the current transition counter
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Navigate switches to section and runs its load routine
func (c *Controller) Navigate(ctx context.Context, section Section) {
	switch section {
	case Home:
		c.loadHome(ctx)
	case Search:
		c.begin(Search, "", searchHeader, false)
	case Categories:
		c.loadCategories(ctx)
	case Areas:
		c.loadAreas(ctx)
	case Ingredients:
		c.loadIngredients(ctx)
	case Random:
		c.loadRandom(ctx)
	case RandomBatch:
		c.loadRecipes(RandomBatch, "", randomBatchHeader, msgRandomBatchFailed, func() ([]models.Recipe, error) {
			return c.catalog.GetRandomBatch(ctx), nil
		})
	case Latest:
		c.loadRecipes(Latest, "", latestHeader, msgLatestFailed, func() ([]models.Recipe, error) {
			return c.catalog.GetLatest(ctx), nil
		})
	case Favorites:
		c.showFavorites()
	case Contact:
		c.begin(Contact, "", contactHeader, false)
	default:
		c.loadHome(ctx)
	}
}

// SearchByName runs a name search from the search box
// A cleared box falls back to the home listing query while staying in Search
func (c *Controller) SearchByName(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		c.clearSearch(ctx)
		return
	}
	c.loadRecipes(Search, query, searchHeader, msgSearchFailed, func() ([]models.Recipe, error) {
		return c.catalog.SearchByName(ctx, query)
	})
}

// SearchByLetter runs a first-letter search; anything but one character clears the search
func (c *Controller) SearchByLetter(ctx context.Context, letter string) {
	if len([]rune(letter)) != 1 {
		c.clearSearch(ctx)
		return
	}
	c.loadRecipes(Search, letter, searchHeader, msgSearchFailed, func() ([]models.Recipe, error) {
		return c.catalog.SearchByFirstLetter(ctx, letter)
	})
}

// SearchByID looks up a single recipe by id from the search box
func (c *Controller) SearchByID(ctx context.Context, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		c.clearSearch(ctx)
		return
	}
	c.loadRecipes(Search, id, searchHeader, msgIDSearchFailed, func() ([]models.Recipe, error) {
		recipe, err := c.catalog.GetByID(ctx, id)
		if err != nil || recipe == nil {
			return nil, err
		}
		return []models.Recipe{*recipe}, nil
	})
}

// SelectCategory drills into one category, promoting its filter results to full recipes
func (c *Controller) SelectCategory(ctx context.Context, name string) {
	c.drillDown(ctx, Categories, name, categoryHeader(name), c.catalog.FindByCategory, msgCategoryFailed)
}

// SelectArea drills into one cuisine area
func (c *Controller) SelectArea(ctx context.Context, name string) {
	c.drillDown(ctx, Areas, name, areaHeader(name), c.catalog.FindByArea, msgAreaFailed)
}

// SelectIngredient drills into recipes using one ingredient
func (c *Controller) SelectIngredient(ctx context.Context, name string) {
	c.drillDown(ctx, Ingredients, name, ingredientHeader(name), c.catalog.FindByIngredient, msgIngredientFailed)
}

// ShowRecipe loads one recipe for the detail view
// It does not change the section, but is dropped if a transition happens first
func (c *Controller) ShowRecipe(ctx context.Context, id string) {
	gen := c.Generation()

	recipe, err := c.catalog.GetByID(ctx, id)
	if err == nil && recipe == nil {
		err = &models.NotFoundError{Kind: "recipe", ID: id}
	}
	if err != nil {
		c.logError("Recipe detail failed", err, "id", id)
		c.deliver(gen, func(r Renderer) { r.ShowError(msgDetailFailed) })
		return
	}

	c.deliver(gen, func(r Renderer) { r.ShowRecipeDetail(*recipe) })
}

// ToggleFavorite adds or removes a recipe from favorites and reports the outcome as a notice
func (c *Controller) ToggleFavorite(ctx context.Context, id string) {
	result, err := c.favorites.Toggle(ctx, id, c.catalog.GetByID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		var persistErr *favorites.PersistenceError
		var notFound *models.NotFoundError
		switch {
		case errors.As(err, &persistErr):
			c.logError("Favorites write failed", err, "id", id)
		case errors.As(err, &notFound):
			c.logError("Favorite target not found", err, "id", id)
		default:
			c.logError("Favorite toggle failed", err, "id", id)
		}
		c.renderer.ShowNotice(Notice{Level: NoticeError, Message: msgFavoriteFailed})
		return
	}

	switch result {
	case favorites.ToggledOn:
		c.renderer.ShowNotice(Notice{Level: NoticeSuccess, Message: msgFavoriteAdded})
		c.renderer.MarkFavorite(id, true)
	case favorites.ToggleAlreadyPresent:
		c.renderer.ShowNotice(Notice{Level: NoticeInfo, Message: msgFavoriteExists})
		c.renderer.MarkFavorite(id, true)
	case favorites.ToggledOff:
		c.renderer.ShowNotice(Notice{Level: NoticeSuccess, Message: msgFavoriteRemoved})
		c.renderer.MarkFavorite(id, false)
	}

	if c.state.Section == Favorites {
		c.renderFavoritesLocked()
	}
}

// loadHome is the home listing: the name search with an empty query
func (c *Controller) loadHome(ctx context.Context) {
	c.loadRecipes(Home, "", homeHeader, msgHomeFailed, func() ([]models.Recipe, error) {
		return c.catalog.SearchByName(ctx, "")
	})
}

// clearSearch re-runs the home listing query for a cleared search box
// It is a separate call site from loadHome on purpose: the section stays Search
func (c *Controller) clearSearch(ctx context.Context) {
	c.loadRecipes(Search, "", searchHeader, msgHomeFailed, func() ([]models.Recipe, error) {
		return c.catalog.SearchByName(ctx, "")
	})
}

func (c *Controller) loadCategories(ctx context.Context) {
	gen := c.begin(Categories, "", categoriesHeader, true)

	categories, err := c.catalog.ListCategories(ctx)
	if err != nil {
		c.fail(gen, msgCategoriesFailed, err)
		return
	}

	items := make([]Item, 0, len(categories))
	for i := range categories {
		items = append(items, Item{Kind: ItemCategory, Category: &categories[i]})
	}
	c.present(gen, items)
}

func (c *Controller) loadAreas(ctx context.Context) {
	gen := c.begin(Areas, "", areasHeader, true)

	areas, err := c.catalog.ListAreas(ctx)
	if err != nil {
		c.fail(gen, msgAreasFailed, err)
		return
	}

	items := make([]Item, 0, len(areas))
	for i := range areas {
		items = append(items, Item{Kind: ItemArea, Area: &areas[i]})
	}
	c.present(gen, items)
}

func (c *Controller) loadIngredients(ctx context.Context) {
	gen := c.begin(Ingredients, "", ingredientsHeader, true)

	ingredients, err := c.catalog.ListIngredients(ctx)
	if err != nil {
		c.fail(gen, msgIngredientsFailed, err)
		return
	}

	items := make([]Item, 0, len(ingredients))
	for i := range ingredients {
		items = append(items, Item{Kind: ItemIngredient, Ingredient: &ingredients[i]})
	}
	c.present(gen, items)
}

// loadRandom treats an empty answer as a failure, unlike the list routines
func (c *Controller) loadRandom(ctx context.Context) {
	gen := c.begin(Random, "", randomHeader, true)

	recipe, err := c.catalog.GetRandom(ctx)
	if err == nil && recipe == nil {
		err = &models.NotFoundError{Kind: "recipe", ID: "random"}
	}
	if err != nil {
		c.fail(gen, msgRandomFailed, err)
		return
	}
	c.present(gen, c.recipeItems([]models.Recipe{*recipe}))
}

// loadRecipes is the shared routine for every view whose result is a recipe list
func (c *Controller) loadRecipes(section Section, query string, header Header, failMsg string, fetch func() ([]models.Recipe, error)) {
	gen := c.begin(section, query, header, true)

	recipes, err := fetch()
	if err != nil {
		c.fail(gen, failMsg, err)
		return
	}
	c.present(gen, c.recipeItems(recipes))
}

// drillDown narrows a reference-list section to one entry and always promotes the
// filter results, since they carry too little to display
func (c *Controller) drillDown(ctx context.Context, section Section, name string, header Header,
	find func(context.Context, string) ([]models.FilterResult, error), failMsg string) {
	gen := c.begin(section, name, header, true)

	results, err := find(ctx, name)
	if err != nil {
		c.fail(gen, failMsg, err)
		return
	}
	if len(results) == 0 {
		c.present(gen, nil)
		return
	}

	recipes, err := c.details.Expand(ctx, results)
	if err != nil {
		c.fail(gen, failMsg, err)
		return
	}
	c.present(gen, c.recipeItems(recipes))
}

func (c *Controller) showFavorites() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transitionLocked(Favorites, "", favoritesHeader)
	c.renderer.ShowLoading()
	c.renderFavoritesLocked()
}

// renderFavoritesLocked must be called with c.mu held
func (c *Controller) renderFavoritesLocked() {
	list := c.favorites.List()
	if len(list) == 0 {
		c.renderer.ShowNoResults()
		return
	}
	items := make([]Item, 0, len(list))
	for i := range list {
		items = append(items, Item{Kind: ItemRecipe, Recipe: &list[i], Favorite: true})
	}
	c.renderer.ShowResults(items)
}

// begin records a transition and returns its generation
func (c *Controller) begin(section Section, query string, header Header, loading bool) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	gen := c.transitionLocked(section, query, header)
	if loading {
		c.renderer.ShowLoading()
	}
	return gen
}

func (c *Controller) transitionLocked(section Section, query string, header Header) uint64 {
	c.generation++
	c.state = ViewState{Section: section, LastQuery: query}
	if c.logger != nil {
		c.logger.Debug("Transition", "section", section, "query", query, "generation", c.generation)
	}
	c.renderer.ShowSection(c.state, header)
	return c.generation
}

// deliver runs render only if gen is still the current generation
func (c *Controller) deliver(gen uint64, render func(Renderer)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		if c.logger != nil {
			c.logger.Debug("Discarding stale result", "generation", gen, "current", c.generation)
		}
		return false
	}
	render(c.renderer)
	return true
}

func (c *Controller) present(gen uint64, items []Item) {
	c.deliver(gen, func(r Renderer) {
		if len(items) == 0 {
			r.ShowNoResults()
			return
		}
		r.ShowResults(items)
	})
}

func (c *Controller) fail(gen uint64, message string, err error) {
	c.logError("Load failed", err, "generation", gen)
	c.deliver(gen, func(r Renderer) { r.ShowError(message) })
}

func (c *Controller) recipeItems(recipes []models.Recipe) []Item {
	items := make([]Item, 0, len(recipes))
	for i := range recipes {
		items = append(items, Item{
			Kind:     ItemRecipe,
			Recipe:   &recipes[i],
			Favorite: c.favorites.Contains(recipes[i].ID),
		})
	}
	return items
}

func (c *Controller) logError(msg string, err error, keyvals ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Error(msg, append(keyvals, "error", err)...)
}
