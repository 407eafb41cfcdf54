package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"quietspot/internal/models"
)

type ReviewRepository struct {
	DB     *sql.DB
	Driver string
}

func (r *ReviewRepository) CreateReview(ctx context.Context, in models.NewReview) (models.Review, error) {
	rev := models.Review{
		ID:        uuid.NewString(),
		VenueID:   in.VenueID,
		UserID:    in.UserID,
		Quietness: in.Quietness,
		Comfort:   in.Comfort,
		Lighting:  in.Lighting,
		Text:      in.Text,
		// Postgres and MySQL keep microseconds; truncate so the returned
		// record matches what a later read sees.
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	query := rebind(r.Driver, `
INSERT INTO reviews (id, venue_id, user_id, quietness, comfort, lighting, text, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.DB.ExecContext(ctx, query,
		rev.ID, rev.VenueID, rev.UserID, rev.Quietness, rev.Comfort, rev.Lighting, rev.Text, rev.CreatedAt,
	)
	if err != nil {
		return models.Review{}, err
	}
	return rev, nil
}

// GetReviewsByVenueID lists a venue's reviews, newest first.
func (r *ReviewRepository) GetReviewsByVenueID(ctx context.Context, venueID string) ([]models.Review, error) {
	query := rebind(r.Driver, `
               SELECT id, venue_id, user_id, quietness, comfort, lighting, text, created_at
               FROM reviews
               WHERE venue_id = ?
               ORDER BY created_at DESC
       `)
	rows, err := r.DB.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(&rev.ID, &rev.VenueID, &rev.UserID, &rev.Quietness, &rev.Comfort, &rev.Lighting,
			&rev.Text, &rev.CreatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}
