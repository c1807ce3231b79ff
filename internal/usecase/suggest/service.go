package suggest

import (
	"context"
	"fmt"
	"strings"

	domsuggest "github.com/nearserve/nearserve/internal/domain/suggest"
)

// Service produces typeahead suggestions from the service-frequency index.
type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the most common matching services, ranked by provider
// count. A blank query yields an empty list without touching the store.
// limit <= 0 falls back to the default.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]domsuggest.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domsuggest.Entry{}, nil
	}
	if limit <= 0 {
		limit = domsuggest.DefaultLimit
	}

	counts, err := s.repo.AggregateByService(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("aggregate services: %w", err)
	}

	return domsuggest.Rank(counts, limit), nil
}
