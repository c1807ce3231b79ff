// Package directory serves public provider profile reads.
package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/nearserve/nearserve/internal/domain"
	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

// MaxLookupIDs caps a single batch lookup.
const MaxLookupIDs = 50

// Repository defines the storage contract for profile reads.
type Repository interface {
	Get(ctx context.Context, id string) (domprov.Provider, error)
	GetMulti(ctx context.Context, ids []string) ([]domprov.Provider, error)
}

// Service exposes single and batch provider reads.
type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns one provider by id.
func (s *Service) Get(ctx context.Context, id string) (domprov.Provider, error) {
	id = strings.TrimSpace(id)
	if uuid.Validate(id) != nil {
		return domprov.Provider{}, domain.ErrInvalidProviderID
	}
	return s.repo.Get(ctx, id)
}

// Lookup returns the providers for the given ids, skipping unknown ones.
// Result order follows store order, not request order.
func (s *Service) Lookup(ctx context.Context, ids []string) ([]domprov.Provider, error) {
	if len(ids) == 0 {
		return []domprov.Provider{}, nil
	}
	if len(ids) > MaxLookupIDs {
		return nil, domain.ErrTooManyIDs
	}
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if uuid.Validate(id) != nil {
			return nil, domain.ErrInvalidProviderID
		}
		cleaned = append(cleaned, id)
	}
	return s.repo.GetMulti(ctx, cleaned)
}
