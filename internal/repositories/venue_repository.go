package repositories

import (
	"context"
	"database/sql"
	"errors"

	"quietspot/internal/models"
)

const venueColumns = `id, name, address, latitude, longitude, description, category, created_at`

type VenueRepository struct {
	DB     *sql.DB
	Driver string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(s rowScanner) (models.Venue, error) {
	var v models.Venue
	err := s.Scan(&v.ID, &v.Name, &v.Address, &v.Latitude, &v.Longitude, &v.Description, &v.Category, &v.CreatedAt)
	return v, err
}

func (r *VenueRepository) GetVenues(ctx context.Context) ([]models.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
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

// GetVenueByID returns models.ErrNoRecord when no venue has the id.
func (r *VenueRepository) GetVenueByID(ctx context.Context, id string) (models.Venue, error) {
	query := rebind(r.Driver, `SELECT `+venueColumns+` FROM venues WHERE id = ?`)
	v, err := scanVenue(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Venue{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Venue{}, err
	}
	return v, nil
}
