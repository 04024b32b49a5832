package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mealJSON = `{
	"idMeal": "52772",
	"strMeal": "Teriyaki Chicken Casserole",
	"strCategory": "Chicken",
	"strArea": "Japanese",
	"strInstructions": "Preheat oven to 350.",
	"strMealThumb": "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
	"strTags": "Meat, Casserole,",
	"strYoutube": "https://www.youtube.com/watch?v=4aZr5hZXP_s",
	"strSource": null,
	"strIngredient1": "soy sauce",
	"strMeasure1": "3/4 cup",
	"strIngredient2": "",
	"strMeasure2": "",
	"strIngredient3": "brown sugar",
	"strMeasure3": "1/2 cup",
	"strIngredient4": null,
	"strMeasure4": null,
	"strIngredient20": "garlic ",
	"strMeasure20": " 2 cloves"
}`

func TestRecipeUnmarshalScansAllSlots(t *testing.T) {
	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(mealJSON), &r))

	assert.Equal(t, "52772", r.ID)
	assert.Equal(t, "Teriyaki Chicken Casserole", r.Name)
	assert.Equal(t, "Japanese", r.Area)
	assert.Empty(t, r.Source)

	// Slot 2 and 4 are empty but slot 20 must still be found
	require.Len(t, r.Ingredients, 3)
	assert.Equal(t, IngredientLine{Position: 1, Ingredient: "soy sauce", Measure: "3/4 cup"}, r.Ingredients[0])
	assert.Equal(t, 3, r.Ingredients[1].Position)
	assert.Equal(t, 20, r.Ingredients[2].Position)
}

func TestRecipeRoundTrip(t *testing.T) {
	var original Recipe
	require.NoError(t, json.Unmarshal([]byte(mealJSON), &original))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Recipe
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestRecipeRoundTripList(t *testing.T) {
	list := []Recipe{
		{ID: "1", Name: "Alpha", Ingredients: []IngredientLine{{Position: 2, Measure: "pinch"}}},
		{ID: "2", Name: "Beta", Category: "Dessert", Tags: "Sweet"},
	}

	data, err := json.Marshal(list)
	require.NoError(t, err)

	var decoded []Recipe
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, list, decoded)
}

func TestRecipeMarshalRejectsBadPosition(t *testing.T) {
	_, err := json.Marshal(Recipe{ID: "x", Ingredients: []IngredientLine{{Position: 21, Ingredient: "salt"}}})
	assert.Error(t, err)
}

func TestTagList(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "  ", nil},
		{"single", "Pasta", []string{"Pasta"}},
		{"trims and drops empties", "Meat, Casserole,", []string{"Meat", "Casserole"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recipe{Tags: tt.tags}.TagList())
		})
	}
}

func TestDisplayIngredients(t *testing.T) {
	r := Recipe{Ingredients: []IngredientLine{
		{Position: 1, Ingredient: " salt ", Measure: " 1 tsp "},
		{Position: 2, Ingredient: "   ", Measure: "2 cups"},
		{Position: 5, Ingredient: "pepper"},
	}}

	got := r.DisplayIngredients()
	assert.Equal(t, []IngredientLine{
		{Position: 1, Ingredient: "salt", Measure: "1 tsp"},
		{Position: 5, Ingredient: "pepper"},
	}, got)
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "recipe", ID: "42"}
	assert.Equal(t, `recipe "42" not found`, err.Error())
}
