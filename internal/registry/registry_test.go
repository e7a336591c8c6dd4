package registry

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("Count", func(t *testing.T) {
		r := New()
		r.Visit("Elm Street")
		r.Visit("Elm Street")
		r.Visit("Elm Street")
		r.Visit("Sesame Street")

		if got := r.Count("Elm Street"); got != 3 {
			t.Errorf("Expected 3 visits at Elm Street, got %d", got)
		}
		if got := r.Count("Sesame Street"); got != 1 {
			t.Errorf("Expected 1 visit at Sesame Street, got %d", got)
		}
	})

	t.Run("Unknown stop", func(t *testing.T) {
		r := New()
		if got := r.Count("Nowhere Road"); got != 0 {
			t.Errorf("Expected 0, got %d", got)
		}
		if stops := r.Stops(); stops == nil || len(stops) != 0 {
			t.Errorf("Expected empty non-nil stops, got %v", stops)
		}
	})

	t.Run("Stops sorted", func(t *testing.T) {
		r := New()
		for _, stop := range []string{"Pilotow Street", "Bourbon Street", "Fifth Avenue", "Bourbon Street"} {
			r.Visit(stop)
		}
		stops := r.Stops()
		expected := []string{"Bourbon Street", "Fifth Avenue", "Pilotow Street"}
		if len(stops) != len(expected) {
			t.Fatalf("Expected %d stops, got %d", len(expected), len(stops))
		}
		for i := range expected {
			if stops[i] != expected[i] {
				t.Errorf("Expected %s at %d, got %s", expected[i], i, stops[i])
			}
		}
	})
}
