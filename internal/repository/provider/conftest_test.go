package provider

import (
	"context"

	"github.com/nearserve/nearserve/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	hincrByFn      func(ctx context.Context, key, field string, delta int64) (int64, error)
	hdelFn         func(ctx context.Context, key string, fields ...string) error
	existsFn       func(ctx context.Context, key string) (bool, error)
	getFn          func(ctx context.Context, key string) ([]byte, error)
	setFn          func(ctx context.Context, key string, value []byte) error
	geoAddFn       func(ctx context.Context, key, member string, lon, lat float64) error
	geoRemoveFn    func(ctx context.Context, key, member string) error
	geoSearchFn    func(ctx context.Context, q *db.GeoQuery) ([]db.GeoEntry, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	if m.hincrByFn != nil {
		return m.hincrByFn(ctx, key, field, delta)
	}
	return 1, nil
}

func (m *mockStore) HDel(ctx context.Context, key string, fields ...string) error {
	if m.hdelFn != nil {
		return m.hdelFn(ctx, key, fields...)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) GeoAdd(ctx context.Context, key, member string, lon, lat float64) error {
	if m.geoAddFn != nil {
		return m.geoAddFn(ctx, key, member, lon, lat)
	}
	return nil
}

func (m *mockStore) GeoRemove(ctx context.Context, key, member string) error {
	if m.geoRemoveFn != nil {
		return m.geoRemoveFn(ctx, key, member)
	}
	return nil
}

func (m *mockStore) GeoSearch(ctx context.Context, q *db.GeoQuery) ([]db.GeoEntry, error) {
	if m.geoSearchFn != nil {
		return m.geoSearchFn(ctx, q)
	}
	return nil, nil
}
