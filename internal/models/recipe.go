package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxIngredients is the number of ingredient/measure slots a catalog record carries
const MaxIngredients = 20

// IngredientLine is one (ingredient, measure) slot of a recipe
// Either side may be empty; Position is 1-based and matches the slot number on the wire
type IngredientLine struct {
	Position   int
	Ingredient string
	Measure    string
}

// Recipe is a fully detailed catalog record
// Two recipes are the same entity iff their IDs are equal
type Recipe struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumb        string
	Tags         string // comma-separated, as served
	Source       string
	YouTube      string
	Ingredients  []IngredientLine // only slots where ingredient or measure was present
}

// recipeFields lists the scalar wire fields of a meal object
type recipeFields struct {
	ID           *string `json:"idMeal"`
	Name         *string `json:"strMeal"`
	Category     *string `json:"strCategory"`
	Area         *string `json:"strArea"`
	Instructions *string `json:"strInstructions"`
	Thumb        *string `json:"strMealThumb"`
	Tags         *string `json:"strTags"`
	Source       *string `json:"strSource"`
	YouTube      *string `json:"strYoutube"`
}

// UnmarshalJSON decodes a catalog meal object
// All 20 ingredient slots are scanned; an empty slot does not end the list
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode recipe: %w", err)
	}

	var f recipeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to decode recipe fields: %w", err)
	}

	*r = Recipe{
		ID:           deref(f.ID),
		Name:         deref(f.Name),
		Category:     deref(f.Category),
		Area:         deref(f.Area),
		Instructions: deref(f.Instructions),
		Thumb:        deref(f.Thumb),
		Tags:         deref(f.Tags),
		Source:       deref(f.Source),
		YouTube:      deref(f.YouTube),
	}

	for i := 1; i <= MaxIngredients; i++ {
		ingredient := rawString(raw[fmt.Sprintf("strIngredient%d", i)])
		measure := rawString(raw[fmt.Sprintf("strMeasure%d", i)])
		if ingredient == "" && measure == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, IngredientLine{
			Position:   i,
			Ingredient: ingredient,
			Measure:    measure,
		})
	}

	return nil
}

// MarshalJSON encodes the recipe in the catalog's meal shape so persisted
// favorites stay readable by anything that understands the catalog format
func (r Recipe) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"idMeal":          r.ID,
		"strMeal":         r.Name,
		"strCategory":     nullable(r.Category),
		"strArea":         nullable(r.Area),
		"strInstructions": nullable(r.Instructions),
		"strMealThumb":    nullable(r.Thumb),
		"strTags":         nullable(r.Tags),
		"strSource":       nullable(r.Source),
		"strYoutube":      nullable(r.YouTube),
	}

	for i := 1; i <= MaxIngredients; i++ {
		out[fmt.Sprintf("strIngredient%d", i)] = nil
		out[fmt.Sprintf("strMeasure%d", i)] = nil
	}
	for _, line := range r.Ingredients {
		if line.Position < 1 || line.Position > MaxIngredients {
			return nil, fmt.Errorf("recipe %s: ingredient position %d out of range", r.ID, line.Position)
		}
		out[fmt.Sprintf("strIngredient%d", line.Position)] = nullable(line.Ingredient)
		out[fmt.Sprintf("strMeasure%d", line.Position)] = nullable(line.Measure)
	}

	return json.Marshal(out)
}

// TagList splits the comma-separated tag string, dropping empty entries
func (r Recipe) TagList() []string {
	if strings.TrimSpace(r.Tags) == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(r.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// DisplayIngredients returns the lines worth showing: ingredient present after
// trimming, with both sides trimmed
func (r Recipe) DisplayIngredients() []IngredientLine {
	var lines []IngredientLine
	for _, line := range r.Ingredients {
		ingredient := strings.TrimSpace(line.Ingredient)
		if ingredient == "" {
			continue
		}
		lines = append(lines, IngredientLine{
			Position:   line.Position,
			Ingredient: ingredient,
			Measure:    strings.TrimSpace(line.Measure),
		})
	}
	return lines
}

// FilterResult is the partial projection returned by the filter endpoints
// It must be promoted to a Recipe before it can be shown in detail
type FilterResult struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// Category is a catalog category
type Category struct {
	ID          string `json:"idCategory,omitempty"`
	Name        string `json:"strCategory"`
	Description string `json:"strCategoryDescription,omitempty"`
	Thumb       string `json:"strCategoryThumb,omitempty"`
}

// Area is a cuisine area; the name doubles as the filter key
type Area struct {
	Name string `json:"strArea"`
}

// Ingredient is a catalog ingredient
type Ingredient struct {
	ID          string `json:"idIngredient,omitempty"`
	Name        string `json:"strIngredient"`
	Description string `json:"strDescription,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// rawString reads a JSON string value, treating null, absent and non-string values as empty
func rawString(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return ""
	}
	return s
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
