package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/recipefinder/internal/models"
)

// StorageKey is the key the serialized favorites list lives under
const StorageKey = "recipeFavorites"

// KeyValueStore is the string store favorites are persisted to
// db.DB satisfies it; MemoryStore is the in-process version
type KeyValueStore interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

// AddResult distinguishes a real insert from a no-op
type AddResult int

const (
	Added AddResult = iota
	AlreadyPresent
)

func (r AddResult) String() string {
	if r == AlreadyPresent {
		return "already present"
	}
	return "added"
}

// ToggleResult reports which way a toggle went
type ToggleResult int

const (
	ToggledOn ToggleResult = iota
	ToggledOff
	ToggleAlreadyPresent
)

// FetchFunc supplies the full record for an id that isn't favorited yet
// It returns nil when the id doesn't resolve
type FetchFunc func(ctx context.Context, id string) (*models.Recipe, error)

// PersistenceError wraps a failed read or write of the backing store
type PersistenceError struct {
	Op    string // "load", "save" or "clear"
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("favorites %s failed: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// Store is an ordered set of favorite recipes keyed by id
// The in-memory list is only replaced after the backing store accepted the new list
type Store struct {
	mu      sync.Mutex
	kv      KeyValueStore
	recipes []models.Recipe
	logger  *log.Logger
}

// Open loads the persisted list from kv
// A missing key is an empty list; an unreadable value is logged and treated as empty
// so one corrupt write doesn't lock the user out of favorites
func Open(ctx context.Context, kv KeyValueStore, logger *log.Logger) (*Store, error) {
	s := &Store{kv: kv, logger: logger, recipes: []models.Recipe{}}

	raw, ok, err := kv.GetValue(ctx, StorageKey)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Cause: err}
	}
	if !ok || raw == "" {
		return s, nil
	}

	recipes, err := Decode([]byte(raw))
	if err != nil {
		if logger != nil {
			logger.Error("Discarding unreadable favorites", "error", err)
		}
		return s, nil
	}
	s.recipes = recipes
	return s, nil
}

// Decode parses a serialized favorites list, dropping duplicate ids after the first
func Decode(data []byte) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}

	seen := make(map[string]bool, len(recipes))
	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out, nil
}

// Encode serializes a favorites list as a JSON array of recipes
func Encode(recipes []models.Recipe) ([]byte, error) {
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorites: %w", err)
	}
	return data, nil
}

// List returns a copy of the favorites in insertion order
func (s *Store) List() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Len returns the number of favorites
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recipes)
}

// Contains reports whether id is favorited
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Add appends recipe unless its id is already present
func (s *Store) Add(ctx context.Context, recipe models.Recipe) (AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(recipe.ID) >= 0 {
		return AlreadyPresent, nil
	}

	next := make([]models.Recipe, 0, len(s.recipes)+1)
	next = append(next, s.recipes...)
	next = append(next, recipe)

	if err := s.commit(ctx, next); err != nil {
		return Added, err
	}
	return Added, nil
}

// Remove deletes id if present; removing a missing id is a no-op
// It reports whether anything was removed
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]models.Recipe, 0, len(s.recipes)-1)
	next = append(next, s.recipes[:idx]...)
	next = append(next, s.recipes[idx+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Toggle removes id if favorited, otherwise fetches the full record and adds it
// fetch runs without the store lock held, so it may block on the network
func (s *Store) Toggle(ctx context.Context, id string, fetch FetchFunc) (ToggleResult, error) {
	if s.Contains(id) {
		if _, err := s.Remove(ctx, id); err != nil {
			return ToggledOff, err
		}
		return ToggledOff, nil
	}

	recipe, err := fetch(ctx, id)
	if err != nil {
		return ToggledOn, fmt.Errorf("failed to fetch recipe %s: %w", id, err)
	}
	if recipe == nil {
		return ToggledOn, &models.NotFoundError{Kind: "recipe", ID: id}
	}

	result, err := s.Add(ctx, *recipe)
	if err != nil {
		return ToggledOn, err
	}
	// Another toggle may have added it while fetch was running
	if result == AlreadyPresent {
		return ToggleAlreadyPresent, nil
	}
	return ToggledOn, nil
}

// Clear drops every favorite and removes the persisted value
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.DeleteValue(ctx, StorageKey); err != nil {
		return &PersistenceError{Op: "clear", Cause: err}
	}
	s.recipes = nil
	return nil
}

// commit writes next to the backing store and only then swaps it in
// Must be called with s.mu held
func (s *Store) commit(ctx context.Context, next []models.Recipe) error {
	data, err := Encode(next)
	if err != nil {
		return &PersistenceError{Op: "save", Cause: err}
	}
	if err := s.kv.SetValue(ctx, StorageKey, string(data)); err != nil {
		if s.logger != nil {
			s.logger.Error("Failed to save favorites", "error", err)
		}
		return &PersistenceError{Op: "save", Cause: err}
	}
	s.recipes = next
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}
