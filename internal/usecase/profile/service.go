package profile

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nearserve/nearserve/internal/domain"
	"github.com/nearserve/nearserve/internal/domain/geo"
	domprov "github.com/nearserve/nearserve/internal/domain/provider"
)

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Service implements profile field updates and photo management.
type Service struct {
	repo    Repository
	objects ObjectStore
	log     *zap.Logger

	now func() time.Time
}

func New(repo Repository, objects ObjectStore, log *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		objects: objects,
		log:     log,
		now:     time.Now,
	}
}

// Update applies the non-nil fields of in to the provider's profile.
// Service and location changes propagate to the search indexes through the
// repository.
func (s *Service) Update(ctx context.Context, providerID string, in UpdateInput) (domprov.Provider, error) {
	if err := validateUpdateInput(in); err != nil {
		return domprov.Provider{}, err
	}

	p, err := s.repo.Get(ctx, providerID)
	if err != nil {
		return domprov.Provider{}, err
	}
	prev := p

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Service != nil {
		p.Service = strings.TrimSpace(*in.Service)
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Website != nil {
		p.Website = strings.TrimSpace(*in.Website)
	}
	if in.Location != nil {
		loc := *in.Location
		p.Location = &loc
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &p, &prev); err != nil {
		return domprov.Provider{}, err
	}
	return p, nil
}

func validateUpdateInput(in UpdateInput) error {
	if in.Name != nil {
		if err := domprov.ValidateName(*in.Name); err != nil {
			return err
		}
	}
	if in.Phone != nil {
		if err := domprov.ValidatePhone(*in.Phone); err != nil {
			return err
		}
	}
	if in.Service != nil {
		if err := domprov.ValidateService(*in.Service); err != nil {
			return err
		}
	}
	if in.Bio != nil {
		if err := domprov.ValidateBio(*in.Bio); err != nil {
			return err
		}
	}
	if in.Website != nil {
		if err := domprov.ValidateWebsite(*in.Website); err != nil {
			return err
		}
	}
	if in.Location != nil && !geo.ValidateCoordinates(in.Location.Latitude, in.Location.Longitude) {
		return domain.ErrInvalidCoordinates
	}
	return nil
}

// AddPhotos uploads the given images and appends them to the profile. The
// photo cap is enforced against the whole batch before any blob is written.
func (s *Service) AddPhotos(ctx context.Context, providerID string, uploads []Upload) (domprov.Provider, error) {
	if len(uploads) == 0 {
		return domprov.Provider{}, domain.NewValidationError("photos", "at least one file is required")
	}
	for _, u := range uploads {
		if _, ok := extByContentType[u.ContentType]; !ok {
			return domprov.Provider{}, domain.NewValidationError("photos", "unsupported image type")
		}
	}

	p, err := s.repo.Get(ctx, providerID)
	if err != nil {
		return domprov.Provider{}, err
	}
	if len(p.Photos)+len(uploads) > domprov.MaxPhotos {
		return domprov.Provider{}, domain.ErrPhotoLimit
	}
	prev := p

	stored := make([]domprov.Photo, 0, len(uploads))
	for _, u := range uploads {
		key := photoKey(providerID, u.ContentType)
		url, err := s.objects.Put(ctx, key, u.ContentType, u.Body)
		if err != nil {
			s.rollbackPhotos(ctx, stored)
			return domprov.Provider{}, fmt.Errorf("store photo: %w", err)
		}
		stored = append(stored, domprov.Photo{
			URL:        url,
			ObjectKey:  key,
			UploadedAt: s.now(),
		})
	}

	p.Photos = append(p.Photos, stored...)
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &p, &prev); err != nil {
		s.rollbackPhotos(ctx, stored)
		return domprov.Provider{}, err
	}
	return p, nil
}

// rollbackPhotos removes blobs written before a failed batch. Removal
// failures only leave orphans in the bucket, so they are logged and
// swallowed.
func (s *Service) rollbackPhotos(ctx context.Context, stored []domprov.Photo) {
	for _, ph := range stored {
		if err := s.objects.Delete(ctx, ph.ObjectKey); err != nil {
			s.log.Warn("photo rollback failed",
				zap.String("object_key", ph.ObjectKey),
				zap.Error(err),
			)
		}
	}
}

// DeletePhoto removes one photo by its object key, from the store first and
// then from the profile.
func (s *Service) DeletePhoto(ctx context.Context, providerID, objectKey string) (domprov.Provider, error) {
	p, err := s.repo.Get(ctx, providerID)
	if err != nil {
		return domprov.Provider{}, err
	}

	idx := -1
	for i, ph := range p.Photos {
		if ph.ObjectKey == objectKey {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domprov.Provider{}, domain.ErrPhotoNotFound
	}
	prev := p

	if err := s.objects.Delete(ctx, objectKey); err != nil {
		return domprov.Provider{}, fmt.Errorf("delete photo: %w", err)
	}

	photos := make([]domprov.Photo, 0, len(p.Photos)-1)
	photos = append(photos, p.Photos[:idx]...)
	photos = append(photos, p.Photos[idx+1:]...)
	p.Photos = photos
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &p, &prev); err != nil {
		return domprov.Provider{}, err
	}
	return p, nil
}

func photoKey(providerID, contentType string) string {
	return path.Join("providers", providerID, uuid.NewString()+extByContentType[contentType])
}
