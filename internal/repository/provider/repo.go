// Package provider persists service-provider records in the store: one hash
// per provider, a geo index keyed by provider id, a unique email lookup, and
// a service-frequency hash powering suggestions.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nearserve/nearserve/internal/db"
	"github.com/nearserve/nearserve/internal/domain"
	domprov "github.com/nearserve/nearserve/internal/domain/provider"
	"github.com/nearserve/nearserve/internal/domain/suggest"
)

// KeyPrefix namespaces every nearserve key in the store.
const KeyPrefix = "nearserve:"

const (
	geoKey      = KeyPrefix + "geo"
	servicesKey = KeyPrefix + "services"
)

func providerKey(id string) string { return KeyPrefix + "provider:" + id }
func emailKey(email string) string { return KeyPrefix + "email:" + email }

// store is the consumer interface for provider persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	GeoAdd(ctx context.Context, key, member string, lon, lat float64) error
	GeoRemove(ctx context.Context, key, member string) error
	GeoSearch(ctx context.Context, q *db.GeoQuery) ([]db.GeoEntry, error)
}

// Repo implements provider persistence over db.Store.
type Repo struct {
	store store
}

// New creates a provider repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create persists a new provider. The email must be unused.
func (r *Repo) Create(ctx context.Context, p *domprov.Provider) error {
	ek := emailKey(domprov.NormalizeEmail(p.Email))

	taken, err := r.store.Exists(ctx, ek)
	if err != nil {
		return fmt.Errorf("check email %s: %w", p.Email, err)
	}
	if taken {
		return domain.ErrDuplicateEntry
	}

	if err := r.store.HSet(ctx, providerKey(p.ID), buildHashFields(p)); err != nil {
		return fmt.Errorf("store provider %s: %w", p.ID, err)
	}
	if err := r.store.Set(ctx, ek, []byte(p.ID)); err != nil {
		return fmt.Errorf("index email %s: %w", p.Email, err)
	}

	if p.Searchable() {
		if err := r.store.GeoAdd(ctx, geoKey, p.ID, p.Location.Longitude, p.Location.Latitude); err != nil {
			return fmt.Errorf("geo index %s: %w", p.ID, err)
		}
	}

	if p.Service != "" {
		if _, err := r.store.HIncrBy(ctx, servicesKey, p.Service, 1); err != nil {
			return fmt.Errorf("count service %q: %w", p.Service, err)
		}
	}

	return nil
}

// Get returns a provider by id.
func (r *Repo) Get(ctx context.Context, id string) (domprov.Provider, error) {
	m, err := r.store.HGetAll(ctx, providerKey(id))
	if err != nil {
		return domprov.Provider{}, fmt.Errorf("get provider %s: %w", id, err)
	}
	if len(m) == 0 {
		return domprov.Provider{}, domain.ErrProviderNotFound
	}
	return parseHashFields(id, m), nil
}

// GetByEmail returns a provider via the unique email index.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domprov.Provider, error) {
	id, err := r.store.Get(ctx, emailKey(domprov.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprov.Provider{}, domain.ErrProviderNotFound
		}
		return domprov.Provider{}, fmt.Errorf("lookup email %s: %w", email, err)
	}
	return r.Get(ctx, string(id))
}

// GetMulti returns the providers for the given ids. Missing ids are skipped.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]domprov.Provider, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = providerKey(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get providers: %w", err)
	}

	providers := make([]domprov.Provider, 0, len(ids))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		providers = append(providers, parseHashFields(ids[i], m))
	}
	return providers, nil
}

// Update persists field changes on an existing provider and keeps the geo
// index and service-frequency counters consistent with the previous state.
func (r *Repo) Update(ctx context.Context, p *domprov.Provider, prev *domprov.Provider) error {
	if err := r.store.HSet(ctx, providerKey(p.ID), buildHashFields(p)); err != nil {
		return fmt.Errorf("store provider %s: %w", p.ID, err)
	}

	if prev.Service != p.Service {
		if prev.Service != "" {
			if err := r.decrementService(ctx, prev.Service); err != nil {
				return err
			}
		}
		if p.Service != "" {
			if _, err := r.store.HIncrBy(ctx, servicesKey, p.Service, 1); err != nil {
				return fmt.Errorf("count service %q: %w", p.Service, err)
			}
		}
	}

	if locationChanged(prev.Location, p.Location) {
		if p.Searchable() {
			if err := r.store.GeoAdd(ctx, geoKey, p.ID, p.Location.Longitude, p.Location.Latitude); err != nil {
				return fmt.Errorf("geo index %s: %w", p.ID, err)
			}
		} else if prev.Location != nil {
			if err := r.store.GeoRemove(ctx, geoKey, p.ID); err != nil {
				return fmt.Errorf("geo unindex %s: %w", p.ID, err)
			}
		}
	}

	return nil
}

func (r *Repo) decrementService(ctx context.Context, service string) error {
	n, err := r.store.HIncrBy(ctx, servicesKey, service, -1)
	if err != nil {
		return fmt.Errorf("uncount service %q: %w", service, err)
	}
	if n <= 0 {
		if err := r.store.HDel(ctx, servicesKey, service); err != nil {
			return fmt.Errorf("drop service %q: %w", service, err)
		}
	}
	return nil
}

// Touch persists a timestamp-only change (e.g. lastLoginAt) without
// re-checking index state.
func (r *Repo) Touch(ctx context.Context, id string, lastLogin time.Time) error {
	fields := map[string]string{
		fieldLastLoginAt: strconv.FormatInt(lastLogin.UnixMilli(), 10),
		fieldUpdatedAt:   strconv.FormatInt(lastLogin.UnixMilli(), 10),
	}
	if err := r.store.HSet(ctx, providerKey(id), fields); err != nil {
		return fmt.Errorf("touch provider %s: %w", id, err)
	}
	return nil
}

// GeoSearch returns providers within radiusMeters of the origin whose service
// field contains serviceQuery case-insensitively. Results follow the store's
// native ascending-distance order; callers recompute distances themselves.
// Geo members whose hash has lost its coordinates are still returned (with a
// nil Location); members whose hash is gone entirely are dropped.
func (r *Repo) GeoSearch(
	ctx context.Context, serviceQuery string, lat, lon, radiusMeters float64,
) ([]domprov.Provider, error) {
	entries, err := r.store.GeoSearch(ctx, &db.GeoQuery{
		Key:          geoKey,
		Longitude:    lon,
		Latitude:     lat,
		RadiusMeters: radiusMeters,
	})
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	keys := make([]string, len(entries))
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Member
		keys[i] = providerKey(e.Member)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load providers: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(serviceQuery))
	providers := make([]domprov.Provider, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		p := parseHashFields(ids[i], m)
		if !strings.Contains(strings.ToLower(p.Service), needle) {
			continue
		}
		providers = append(providers, p)
	}
	return providers, nil
}

// AggregateByService returns every distinct service string containing the
// query case-insensitively, with its provider count.
func (r *Repo) AggregateByService(ctx context.Context, query string) ([]suggest.ServiceCount, error) {
	m, err := r.store.HGetAll(ctx, servicesKey)
	if err != nil {
		return nil, fmt.Errorf("aggregate services: %w", err)
	}

	needle := strings.ToLower(query)
	counts := make([]suggest.ServiceCount, 0, len(m))
	for service, raw := range m {
		if !strings.Contains(strings.ToLower(service), needle) {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			continue
		}
		counts = append(counts, suggest.ServiceCount{Service: service, Count: n})
	}
	return counts, nil
}

func locationChanged(a, b *domprov.Location) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	return a.Longitude != b.Longitude || a.Latitude != b.Latitude
}
