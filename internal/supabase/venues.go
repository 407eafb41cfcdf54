package supabase

import (
	"context"

	"quietspot/internal/models"
)

func (c *Client) GetVenues(ctx context.Context) ([]models.Venue, error) {
	venues := []models.Venue{}
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "created_at.desc",
		}).
		SetResult(&venues).
		Get("/venues")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return venues, nil
}

// GetVenueByID asks for at most one row, so an unknown id comes back as an
// empty array and maps to models.ErrNoRecord.
func (c *Client) GetVenueByID(ctx context.Context, id string) (models.Venue, error) {
	var venues []models.Venue
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"id":     eq(id),
			"limit":  "1",
		}).
		SetResult(&venues).
		Get("/venues")
	if err := do(resp, err); err != nil {
		return models.Venue{}, err
	}
	if len(venues) == 0 {
		return models.Venue{}, models.ErrNoRecord
	}
	return venues[0], nil
}
