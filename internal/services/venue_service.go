package services

import (
	"context"
	"sort"

	"quietspot/internal/models"
	"quietspot/internal/rating"
)

type VenueService struct {
	Venues  VenueStore
	Reviews ReviewStore
	// Locator is optional; without it nearby queries scan every venue.
	Locator Locator
}

func (s *VenueService) GetVenues(ctx context.Context) ([]models.Venue, error) {
	return s.Venues.GetVenues(ctx)
}

// GetVenueByID loads a venue with its reviews, newest first, and their
// freshly computed averages. models.ErrNoRecord means the venue does not exist.
func (s *VenueService) GetVenueByID(ctx context.Context, id string) (models.VenueWithReviews, error) {
	venue, err := s.Venues.GetVenueByID(ctx, id)
	if err != nil {
		return models.VenueWithReviews{}, err
	}

	reviews, err := s.Reviews.GetReviewsByVenueID(ctx, id)
	if err != nil {
		return models.VenueWithReviews{}, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	return models.VenueWithReviews{
		Venue:          venue,
		Reviews:        reviews,
		AverageRatings: rating.CalculateAverageRatings(reviews),
	}, nil
}

// GetNearbyVenues returns venues within radiusMeters of the point, closest
// first, at most limit of them.
func (s *VenueService) GetNearbyVenues(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.NearbyVenue, error) {
	venues, err := s.Venues.GetVenues(ctx)
	if err != nil {
		return nil, err
	}

	if s.Locator == nil {
		return scanNearby(venues, lat, lon, radiusMeters, limit), nil
	}

	hits, err := s.Locator.Nearby(ctx, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
	}

	nearby := make([]models.NearbyVenue, 0, len(hits))
	for _, hit := range hits {
		// The index is rebuilt periodically and may name deleted venues.
		v, ok := byID[hit.VenueID]
		if !ok {
			continue
		}
		nearby = append(nearby, models.NearbyVenue{Venue: v, DistanceM: hit.DistanceM})
	}
	return nearby, nil
}

func scanNearby(venues []models.Venue, lat, lon, radiusMeters float64, limit int) []models.NearbyVenue {
	nearby := make([]models.NearbyVenue, 0)
	for _, v := range venues {
		d := haversineDistanceMeters(lat, lon, v.Latitude, v.Longitude)
		if d <= radiusMeters {
			nearby = append(nearby, models.NearbyVenue{Venue: v, DistanceM: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].DistanceM < nearby[j].DistanceM })
	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby
}
