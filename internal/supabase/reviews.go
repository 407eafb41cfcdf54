package supabase

import (
	"context"
	"fmt"

	"quietspot/internal/models"
)

func (c *Client) CreateReview(ctx context.Context, review models.NewReview) (models.Review, error) {
	var created []models.Review
	resp, err := c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]models.NewReview{review}).
		SetResult(&created).
		Post("/reviews")
	if err := do(resp, err); err != nil {
		return models.Review{}, err
	}
	if len(created) != 1 {
		return models.Review{}, fmt.Errorf("supabase: insert into reviews returned %d rows", len(created))
	}
	return created[0], nil
}

func (c *Client) GetReviewsByVenueID(ctx context.Context, venueID string) ([]models.Review, error) {
	reviews := []models.Review{}
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{
			"select":   "*",
			"venue_id": eq(venueID),
			"order":    "created_at.desc",
		}).
		SetResult(&reviews).
		Get("/reviews")
	if err := do(resp, err); err != nil {
		return nil, err
	}
	return reviews, nil
}
