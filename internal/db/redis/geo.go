package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/nearserve/nearserve/internal/db"
)

// GeoAdd registers or moves a member on a geo index.
func (s *Store) GeoAdd(ctx context.Context, key, member string, lon, lat float64) error {
	cmd := s.b().Arbitrary("GEOADD").Args(
		key,
		formatCoord(lon),
		formatCoord(lat),
		member,
	).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpGeoAdd, Err: err}
	}
	return nil
}

// GeoRemove drops a member from a geo index. Geo indexes are sorted sets
// underneath, so removal is a plain ZREM.
func (s *Store) GeoRemove(ctx context.Context, key, member string) error {
	cmd := s.b().Zrem().Key(key).Member(member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZRem, Err: err}
	}
	return nil
}

// GeoSearch runs a point-radius query via GEOSEARCH, returning members in
// ascending order of the store's native distance (meters).
func (s *Store) GeoSearch(ctx context.Context, q *db.GeoQuery) ([]db.GeoEntry, error) {
	if q.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if q.RadiusMeters <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}

	args := []string{
		q.Key,
		"FROMLONLAT", formatCoord(q.Longitude), formatCoord(q.Latitude),
		"BYRADIUS", strconv.FormatFloat(q.RadiusMeters, 'f', -1, 64), "m",
		"ASC",
	}
	if q.Count > 0 {
		args = append(args, "COUNT", strconv.Itoa(q.Count))
	}
	args = append(args, "WITHCOORD", "WITHDIST")

	cmd := s.b().Arbitrary("GEOSEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
	}

	return parseGeoSearchResult(raw)
}

// parseGeoSearchResult decodes the RESP2 reply for GEOSEARCH with
// WITHCOORD WITHDIST: each element is [member, dist, [lon, lat]].
func parseGeoSearchResult(raw []rueidis.RedisMessage) ([]db.GeoEntry, error) {
	entries := make([]db.GeoEntry, 0, len(raw))

	for i := range raw {
		item, err := raw[i].ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse entry %d: %w", i, err)
		}
		if len(item) < 3 {
			return nil, fmt.Errorf("parse entry %d: want 3 elements, got %d", i, len(item))
		}

		member, err := item[0].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse member %d: %w", i, err)
		}

		distStr, err := item[1].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse distance %d: %w", i, err)
		}
		dist, err := strconv.ParseFloat(distStr, 64)
		if err != nil {
			return nil, fmt.Errorf("parse distance %d: %w", i, err)
		}

		coords, err := item[2].ToArray()
		if err != nil || len(coords) != 2 {
			return nil, fmt.Errorf("parse coordinates %d: %w", i, err)
		}
		lon, err := asFloat(coords[0])
		if err != nil {
			return nil, fmt.Errorf("parse longitude %d: %w", i, err)
		}
		lat, err := asFloat(coords[1])
		if err != nil {
			return nil, fmt.Errorf("parse latitude %d: %w", i, err)
		}

		entries = append(entries, db.GeoEntry{
			Member:         member,
			DistanceMeters: dist,
			Longitude:      lon,
			Latitude:       lat,
		})
	}

	return entries, nil
}

func asFloat(m rueidis.RedisMessage) (float64, error) {
	s, err := m.ToString()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
