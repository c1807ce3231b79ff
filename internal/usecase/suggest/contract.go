package suggest

import (
	"context"

	domsuggest "github.com/nearserve/nearserve/internal/domain/suggest"
)

// Repository defines the storage contract for service-name suggestions.
type Repository interface {
	// AggregateByService returns per-service provider counts for services
	// containing query case-insensitively.
	AggregateByService(ctx context.Context, query string) ([]domsuggest.ServiceCount, error)
}
