package controller

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower builds a fresh Caser per call; a Caser keeps state and is not safe to share
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Fixed page headers
var (
	homeHeader        = Header{"Recipe Finder Pro", "Discover culinary excellence from around the world"}
	searchHeader      = Header{"Search Recipes", "Find your perfect recipe by name, first letter or ID"}
	categoriesHeader  = Header{"Recipe Categories", "Browse recipes by category"}
	areasHeader       = Header{"Cuisine Areas", "Explore recipes from different regions"}
	ingredientsHeader = Header{"Ingredients", "Find recipes by ingredient"}
	randomHeader      = Header{"Random Recipe", "Discover something new and exciting"}
	randomBatchHeader = Header{"Random Selection", "A curated selection of random recipes"}
	latestHeader      = Header{"Latest Recipes", "The newest additions to our collection"}
	favoritesHeader   = Header{"Favorite Recipes", "Your saved recipes"}
	contactHeader     = Header{"Contact Us", "Get in touch with our culinary experts"}
)

func categoryHeader(name string) Header {
	return Header{name + " Recipes", "Discover delicious " + lower(name) + " recipes"}
}

func areaHeader(name string) Header {
	return Header{name + " Cuisine", "Explore authentic " + lower(name) + " recipes"}
}

func ingredientHeader(name string) Header {
	return Header{"Recipes with " + name, "Discover recipes containing " + lower(name)}
}

// User-facing failure messages; raw errors only go to the log
const (
	msgHomeFailed        = "Failed to load recipes. Please try again later."
	msgSearchFailed      = "Search failed. Please try again."
	msgIDSearchFailed    = "Recipe not found. Please check the ID and try again."
	msgCategoriesFailed  = "Failed to load categories. Please try again later."
	msgAreasFailed       = "Failed to load areas. Please try again later."
	msgIngredientsFailed = "Failed to load ingredients. Please try again later."
	msgCategoryFailed    = "Failed to load category recipes. Please try again."
	msgAreaFailed        = "Failed to load area recipes. Please try again."
	msgIngredientFailed  = "Failed to load ingredient recipes. Please try again."
	msgRandomFailed      = "Failed to load random recipe. Please try again."
	msgRandomBatchFailed = "Failed to load random selection. Please try again."
	msgLatestFailed      = "Failed to load latest recipes. Please try again."
	msgDetailFailed      = "Failed to load recipe details. Please try again."

	msgFavoriteAdded   = "Recipe added to favorites!"
	msgFavoriteExists  = "Recipe already in favorites!"
	msgFavoriteRemoved = "Recipe removed from favorites!"
	msgFavoriteFailed  = "Failed to update favorite"
)
