package timetable

import (
	"sort"

	"github.com/jusunglee/easyrider-go/internal/registry"
)

// Transfers returns the stops of reg visited more than once, sorted
func Transfers(reg *registry.Registry) []string {
	result := []string{}
	for _, stop := range reg.Stops() {
		if reg.Count(stop) > 1 {
			result = append(result, stop)
		}
	}
	return result
}

// Illegal intersects the transfer stops with the on-demand stops.
// The result keeps the order of transfers.
func Illegal(transfers []string, onDemand map[string]struct{}) []string {
	result := []string{}
	for _, stop := range transfers {
		if _, ok := onDemand[stop]; ok {
			result = append(result, stop)
		}
	}
	return result
}

func sortedSet(set map[string]struct{}) []string {
	result := make([]string, 0, len(set))
	for name := range set {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
