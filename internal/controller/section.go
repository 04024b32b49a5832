package controller

import (
	"fmt"
	"strings"
)

// Section is a top-level view of the application
type Section int

const (
	Home Section = iota
	Search
	Categories
	Areas
	Ingredients
	Random
	RandomBatch
	Latest
	Favorites
	Contact
)

// AllSections lists sections in sidebar order
var AllSections = []Section{Home, Search, Categories, Areas, Ingredients, Random, RandomBatch, Latest, Favorites, Contact}

var sectionNames = map[Section]string{
	Home:        "home",
	Search:      "search",
	Categories:  "categories",
	Areas:       "areas",
	Ingredients: "ingredients",
	Random:      "random",
	RandomBatch: "random-batch",
	Latest:      "latest",
	Favorites:   "favorites",
	Contact:     "contact",
}

var sectionLabels = map[Section]string{
	Home:        "Home",
	Search:      "Search",
	Categories:  "Categories",
	Areas:       "Cuisines",
	Ingredients: "Ingredients",
	Random:      "Random Recipe",
	RandomBatch: "Random Selection",
	Latest:      "Latest",
	Favorites:   "Favorites",
	Contact:     "Contact",
}

func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// Label is the human-readable sidebar name
func (s Section) Label() string {
	if label, ok := sectionLabels[s]; ok {
		return label
	}
	return s.String()
}

// ParseSection maps a name such as "categories" back to its Section
func ParseSection(name string) (Section, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range sectionNames {
		if n == name {
			return s, nil
		}
	}
	return Home, fmt.Errorf("unknown section %q", name)
}

// ViewState is what the controller currently shows
// LastQuery holds the search text or the drill-down name, empty otherwise
type ViewState struct {
	Section   Section
	LastQuery string
}
