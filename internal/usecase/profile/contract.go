package profile

import (
	"context"
	"io"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

// Repository defines the storage contract for profile mutations.
type Repository interface {
	Get(ctx context.Context, id string) (domprov.Provider, error)
	Update(ctx context.Context, p *domprov.Provider, prev *domprov.Provider) error
}

// ObjectStore persists photo blobs and resolves their public URLs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// UpdateInput carries the profile fields a provider may change. Nil fields
// are left untouched.
type UpdateInput struct {
	Name     *string
	Phone    *string
	Service  *string
	Bio      *string
	Website  *string
	Location *domprov.Location
}

// Upload is one photo received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
