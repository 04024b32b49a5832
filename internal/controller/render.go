package controller

import "github.com/thesavant42/recipefinder/internal/models"

// Header is the page title pair shown above results
type Header struct {
	Title    string
	Subtitle string
}

// ItemKind says which field of an Item is set
type ItemKind int

const (
	ItemRecipe ItemKind = iota
	ItemCategory
	ItemArea
	ItemIngredient
)

// Item is one displayable entry in a result list
type Item struct {
	Kind       ItemKind
	Recipe     *models.Recipe
	Category   *models.Category
	Area       *models.Area
	Ingredient *models.Ingredient
	Favorite   bool // recipes only
}

// Title returns the display name of whatever the item holds
func (i Item) Title() string {
	switch i.Kind {
	case ItemRecipe:
		return i.Recipe.Name
	case ItemCategory:
		return i.Category.Name
	case ItemArea:
		return i.Area.Name
	case ItemIngredient:
		return i.Ingredient.Name
	}
	return ""
}

// NoticeLevel is the tone of a transient notice
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is a toast-style message that does not replace the current view
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Renderer is the presentation surface the controller drives
// Calls are serialized by the controller; implementations must not call back into it synchronously
type Renderer interface {
	ShowSection(state ViewState, header Header)
	ShowLoading()
	ShowResults(items []Item)
	ShowNoResults()
	ShowError(message string)
	ShowRecipeDetail(recipe models.Recipe)
	ShowNotice(notice Notice)
	MarkFavorite(id string, favorite bool)
}
