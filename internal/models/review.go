package models

import "time"

type Review struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id"`
	UserID    string    `json:"user_id"`
	Quietness float64   `json:"quietness"`
	Comfort   float64   `json:"comfort"`
	Lighting  float64   `json:"lighting"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReview carries everything a caller supplies when writing a review; the
// identifier and creation time are assigned by the store.
type NewReview struct {
	VenueID   string  `json:"venue_id"`
	UserID    string  `json:"user_id"`
	Quietness float64 `json:"quietness"`
	Comfort   float64 `json:"comfort"`
	Lighting  float64 `json:"lighting"`
	Text      string  `json:"text"`
}

type RatingSummary struct {
	Quietness float64 `json:"quietness"`
	Comfort   float64 `json:"comfort"`
	Lighting  float64 `json:"lighting"`
	Overall   float64 `json:"overall"`
}

// ReviewEvent is pushed to live feed subscribers of a venue.
type ReviewEvent struct {
	Type           string        `json:"type"`
	Review         Review        `json:"review"`
	AverageRatings RatingSummary `json:"average_ratings"`
}

const ReviewCreatedEvent = "review_created"
