package controller

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrillDownHeaders(t *testing.T) {
	tests := []struct {
		name string
		got  Header
		want Header
	}{
		{"category", categoryHeader("Seafood"), Header{"Seafood Recipes", "Discover delicious seafood recipes"}},
		{"area", areaHeader("Japanese"), Header{"Japanese Cuisine", "Explore authentic japanese recipes"}},
		{"ingredient", ingredientHeader("Chicken Breast"), Header{"Recipes with Chicken Breast", "Discover recipes containing chicken breast"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestDrillDownHeadersConcurrent(t *testing.T) {
	names := []string{"Seafood", "ÉCLAIR", "Beef", "Ὀδυσσεύς"}
	want := make([]Header, len(names))
	for i, n := range names {
		want[i] = categoryHeader(n)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < 200; r++ {
				for i, n := range names {
					assert.Equal(t, want[i], categoryHeader(n))
				}
			}
		}()
	}
	wg.Wait()
}
