package models

import "time"

type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// VenueWithReviews is the venue detail payload. AverageRatings is derived
// from Reviews on every request and never stored.
type VenueWithReviews struct {
	Venue
	Reviews        []Review      `json:"reviews"`
	AverageRatings RatingSummary `json:"average_ratings"`
}

type NearbyVenue struct {
	Venue
	DistanceM float64 `json:"distance_m"`
}

// VenueDistance is a geo index hit.
type VenueDistance struct {
	VenueID   string
	DistanceM float64
}
