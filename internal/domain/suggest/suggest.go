// Package suggest holds the predictive service-suggestion contracts.
package suggest

import (
	"fmt"
	"sort"
)

// DefaultLimit is the suggestion count when the caller does not specify one.
const DefaultLimit = 8

// ServiceCount is one distinct service string with its provider frequency,
// as aggregated by the store.
type ServiceCount struct {
	Service string
	Count   int
}

// Entry is a single ranked suggestion. ID is positional and not stable
// across calls. Category mirrors Name: there is no separate taxonomy.
type Entry struct {
	ID            string
	Name          string
	Category      string
	ProviderCount int
}

// Rank orders counts descending by frequency (ties broken by name so the
// order is deterministic for identical data) and truncates to limit.
func Rank(counts []ServiceCount, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]ServiceCount, len(counts))
	copy(ranked, counts)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Service < ranked[j].Service
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]Entry, len(ranked))
	for i, sc := range ranked {
		entries[i] = Entry{
			ID:            fmt.Sprintf("suggestion_%d", i),
			Name:          sc.Service,
			Category:      sc.Service,
			ProviderCount: sc.Count,
		}
	}
	return entries
}
