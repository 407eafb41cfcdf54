package services

import (
	"context"
	"sync"
	"time"

	"quietspot/internal/models"
)

type memStore struct {
	venues    []models.Venue
	reviews   []models.Review
	bookmarks []models.Bookmark
	err       error
	reviewErr error
	nextID    int
}

func (m *memStore) GetVenues(ctx context.Context) ([]models.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Venue{}, m.venues...), nil
}

func (m *memStore) GetVenueByID(ctx context.Context, id string) (models.Venue, error) {
	if m.err != nil {
		return models.Venue{}, m.err
	}
	for _, v := range m.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Venue{}, models.ErrNoRecord
}

func (m *memStore) CreateReview(ctx context.Context, in models.NewReview) (models.Review, error) {
	if m.err != nil {
		return models.Review{}, m.err
	}
	m.nextID++
	rev := models.Review{
		ID:        string(rune('a' + m.nextID)),
		VenueID:   in.VenueID,
		UserID:    in.UserID,
		Quietness: in.Quietness,
		Comfort:   in.Comfort,
		Lighting:  in.Lighting,
		Text:      in.Text,
		CreatedAt: time.Date(2024, 1, 1, 0, m.nextID, 0, 0, time.UTC),
	}
	m.reviews = append([]models.Review{rev}, m.reviews...)
	return rev, nil
}

func (m *memStore) GetReviewsByVenueID(ctx context.Context, venueID string) ([]models.Review, error) {
	if m.reviewErr != nil {
		return nil, m.reviewErr
	}
	var out []models.Review
	for _, r := range m.reviews {
		if r.VenueID == venueID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) GetBookmarksByUser(ctx context.Context, userID string) ([]models.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Venue{}
	for _, b := range m.bookmarks {
		if b.UserID != userID {
			continue
		}
		v, err := m.GetVenueByID(ctx, b.VenueID)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memStore) AddBookmark(ctx context.Context, userID, venueID string) (models.Bookmark, error) {
	if m.err != nil {
		return models.Bookmark{}, m.err
	}
	b := models.Bookmark{ID: userID + ":" + venueID, UserID: userID, VenueID: venueID}
	m.bookmarks = append(m.bookmarks, b)
	return b, nil
}

func (m *memStore) RemoveBookmark(ctx context.Context, userID, venueID string) error {
	if m.err != nil {
		return m.err
	}
	kept := m.bookmarks[:0]
	for _, b := range m.bookmarks {
		if b.UserID != userID || b.VenueID != venueID {
			kept = append(kept, b)
		}
	}
	m.bookmarks = kept
	return nil
}

func (m *memStore) IsBookmarked(ctx context.Context, userID, venueID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, b := range m.bookmarks {
		if b.UserID == userID && b.VenueID == venueID {
			return true, nil
		}
	}
	return false, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	venues []string
	events []models.ReviewEvent
}

func (p *recordingPublisher) Publish(venueID string, event models.ReviewEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.venues = append(p.venues, venueID)
	p.events = append(p.events, event)
}

type fixedLocator struct {
	hits []models.VenueDistance
	err  error
	got  struct {
		lon, lat, radius float64
		limit            int
	}
}

func (l *fixedLocator) Nearby(ctx context.Context, lon, lat, radiusMeters float64, limit int) ([]models.VenueDistance, error) {
	l.got.lon, l.got.lat, l.got.radius, l.got.limit = lon, lat, radiusMeters, limit
	return l.hits, l.err
}
