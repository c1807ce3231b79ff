package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers depend on narrow sub-interfaces, not on Store itself.
type Store interface {
	Pinger
	HashStore
	GeoStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// GeoQuery is the input for a point-radius search on a geo index.
type GeoQuery struct {
	Key          string
	Longitude    float64
	Latitude     float64
	RadiusMeters float64
	Count        int // 0 = no limit
}

// GeoEntry is a single member returned by a geo search, ordered by the
// store's native ascending distance.
type GeoEntry struct {
	Member         string
	DistanceMeters float64
	Longitude      float64
	Latitude       float64
}

// GeoStore provides geospatial index operations.
type GeoStore interface {
	GeoAdd(ctx context.Context, key, member string, lon, lat float64) error
	GeoRemove(ctx context.Context, key, member string) error
	GeoSearch(ctx context.Context, q *GeoQuery) ([]GeoEntry, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
