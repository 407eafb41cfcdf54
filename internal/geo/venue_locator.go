package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"quietspot/internal/models"
)

const (
	venuesKey    = "venues:geo"
	rebuildKey   = "venues:geo:rebuild"
	memberPrefix = "venue:"

	// Redis GEO cannot store points beyond these latitudes.
	maxLatitude = 85.05112878
)

// VenueLocator keeps venue coordinates in a Redis GEO set.
type VenueLocator struct {
	rdb *redis.Client
}

func NewVenueLocator(rdb *redis.Client) *VenueLocator {
	return &VenueLocator{rdb: rdb}
}

func memberName(venueID string) string {
	return memberPrefix + venueID
}

func parseVenueMember(member string) (string, error) {
	id, ok := strings.CutPrefix(member, memberPrefix)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid member %q", member)
	}
	return id, nil
}

func validCoords(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -maxLatitude && lat <= maxLatitude
}

// locations converts venues to GEO members, skipping the ones Redis would
// reject.
func locations(venues []models.Venue) []*redis.GeoLocation {
	locs := make([]*redis.GeoLocation, 0, len(venues))
	for _, v := range venues {
		if !validCoords(v.Longitude, v.Latitude) {
			log.WithField("venue_id", v.ID).Warnf("geo: skipping venue with invalid coords lon=%.6f lat=%.6f", v.Longitude, v.Latitude)
			continue
		}
		locs = append(locs, &redis.GeoLocation{
			Name:      memberName(v.ID),
			Longitude: v.Longitude,
			Latitude:  v.Latitude,
		})
	}
	return locs
}

// Reindex replaces the whole set with venues and reports how many were
// indexed. Readers see either the old or the new set, never a partial one.
func (l *VenueLocator) Reindex(ctx context.Context, venues []models.Venue) (int, error) {
	locs := locations(venues)
	if len(locs) == 0 {
		return 0, l.rdb.Del(ctx, venuesKey).Err()
	}

	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rebuildKey)
		pipe.GeoAdd(ctx, rebuildKey, locs...)
		pipe.Rename(ctx, rebuildKey, venuesKey)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(locs), nil
}

// Nearby returns venues within radiusMeters sorted by distance (ascending).
func (l *VenueLocator) Nearby(ctx context.Context, lon, lat, radiusMeters float64, limit int) ([]models.VenueDistance, error) {
	res, err := l.rdb.GeoRadius(ctx, venuesKey, lon, lat, &redis.GeoRadiusQuery{
		Radius:   radiusMeters,
		Unit:     "m",
		WithDist: true,
		Count:    limit,
		Sort:     "ASC",
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	hits := make([]models.VenueDistance, 0, len(res))
	for _, item := range res {
		id, err := parseVenueMember(item.Name)
		if err != nil {
			log.WithError(err).Warn("geo: skipping unknown member")
			continue
		}
		hits = append(hits, models.VenueDistance{VenueID: id, DistanceM: item.Dist})
	}
	return hits, nil
}
