package services

import (
	"context"

	"quietspot/internal/models"
)

// The stores are satisfied by both the SQL repositories and the Supabase
// REST client. Implementations return backend errors unchanged and never
// retry.

type VenueStore interface {
	GetVenues(ctx context.Context) ([]models.Venue, error)
	GetVenueByID(ctx context.Context, id string) (models.Venue, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, review models.NewReview) (models.Review, error)
	GetReviewsByVenueID(ctx context.Context, venueID string) ([]models.Review, error)
}

type BookmarkStore interface {
	GetBookmarksByUser(ctx context.Context, userID string) ([]models.Venue, error)
	AddBookmark(ctx context.Context, userID, venueID string) (models.Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, venueID string) error
	IsBookmarked(ctx context.Context, userID, venueID string) (bool, error)
}

// Locator answers radius queries from a geo index.
type Locator interface {
	Nearby(ctx context.Context, lon, lat, radiusMeters float64, limit int) ([]models.VenueDistance, error)
}

// Publisher fans review events out to live subscribers of a venue.
type Publisher interface {
	Publish(venueID string, event models.ReviewEvent)
}
