package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"quietspot/internal/models"
)

type BookmarkRepository struct {
	DB     *sql.DB
	Driver string
}

func (r *BookmarkRepository) AddBookmark(ctx context.Context, userID, venueID string) (models.Bookmark, error) {
	b := models.Bookmark{
		ID:        uuid.NewString(),
		UserID:    userID,
		VenueID:   venueID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	query := rebind(r.Driver, `INSERT INTO bookmarks (id, user_id, venue_id, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := r.DB.ExecContext(ctx, query, b.ID, b.UserID, b.VenueID, b.CreatedAt); err != nil {
		return models.Bookmark{}, err
	}
	return b, nil
}

func (r *BookmarkRepository) RemoveBookmark(ctx context.Context, userID, venueID string) error {
	query := rebind(r.Driver, `DELETE FROM bookmarks WHERE user_id = ? AND venue_id = ?`)
	_, err := r.DB.ExecContext(ctx, query, userID, venueID)
	return err
}

func (r *BookmarkRepository) IsBookmarked(ctx context.Context, userID, venueID string) (bool, error) {
	query := rebind(r.Driver, `SELECT id FROM bookmarks WHERE user_id = ? AND venue_id = ? LIMIT 1`)
	var id string
	err := r.DB.QueryRowContext(ctx, query, userID, venueID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetBookmarksByUser returns the bookmarked venues, most recently saved first.
func (r *BookmarkRepository) GetBookmarksByUser(ctx context.Context, userID string) ([]models.Venue, error) {
	query := rebind(r.Driver, `SELECT v.id, v.name, v.address, v.latitude, v.longitude, v.description, v.category, v.created_at
             FROM bookmarks b
             JOIN venues v ON b.venue_id = v.id
             WHERE b.user_id = ?
             ORDER BY b.created_at DESC`)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := []models.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}
