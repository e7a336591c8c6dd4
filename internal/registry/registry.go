package registry

import (
	"sort"
)

// Registry tallies how many records name each stop for the duration of one batch.
// It only grows; counts are never decremented.
type Registry struct {
	counts map[string]int
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		counts: make(map[string]int),
	}
}

// Visit registers one record calling at stop
func (r *Registry) Visit(stop string) {
	r.counts[stop]++
}

// Count returns the tally for a stop, 0 if it was never visited
func (r *Registry) Count(stop string) int {
	return r.counts[stop]
}

// Stops returns every stop seen, sorted by name
func (r *Registry) Stops() []string {
	result := make([]string, 0, len(r.counts))
	for stop := range r.counts {
		result = append(result, stop)
	}
	sort.Strings(result)
	return result
}
