package supabase

import (
	"context"
	"fmt"

	"quietspot/internal/models"
)

// BookmarkRow is one row of the bookmarks-venues embed
// (select=venue_id,venues(*)).
type BookmarkRow struct {
	VenueID string        `json:"venue_id"`
	Venues  *models.Venue `json:"venues"`
}

// Venue checks the embedded record before handing it out: it must be present
// and must be the venue the bookmark points at.
func (r BookmarkRow) Venue() (models.Venue, error) {
	if r.Venues == nil {
		return models.Venue{}, fmt.Errorf("supabase: bookmark for venue %q has no embedded venue", r.VenueID)
	}
	if r.Venues.ID != r.VenueID {
		return models.Venue{}, fmt.Errorf("supabase: bookmark for venue %q embeds venue %q", r.VenueID, r.Venues.ID)
	}
	return *r.Venues, nil
}

func (c *Client) GetBookmarksByUser(ctx context.Context, userID string) ([]models.Venue, error) {
	var rows []BookmarkRow
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{
			"select":  "venue_id,venues(*)",
			"user_id": eq(userID),
			"order":   "created_at.desc",
		}).
		SetResult(&rows).
		Get("/bookmarks")
	if err := do(resp, err); err != nil {
		return nil, err
	}

	venues := make([]models.Venue, 0, len(rows))
	for _, row := range rows {
		v, err := row.Venue()
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, nil
}

func (c *Client) AddBookmark(ctx context.Context, userID, venueID string) (models.Bookmark, error) {
	var created []models.Bookmark
	resp, err := c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]map[string]string{{"user_id": userID, "venue_id": venueID}}).
		SetResult(&created).
		Post("/bookmarks")
	if err := do(resp, err); err != nil {
		return models.Bookmark{}, err
	}
	if len(created) != 1 {
		return models.Bookmark{}, fmt.Errorf("supabase: insert into bookmarks returned %d rows", len(created))
	}
	return created[0], nil
}

func (c *Client) RemoveBookmark(ctx context.Context, userID, venueID string) error {
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{
			"user_id":  eq(userID),
			"venue_id": eq(venueID),
		}).
		Delete("/bookmarks")
	return do(resp, err)
}

func (c *Client) IsBookmarked(ctx context.Context, userID, venueID string) (bool, error) {
	var rows []struct {
		ID string `json:"id"`
	}
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{
			"select":   "id",
			"user_id":  eq(userID),
			"venue_id": eq(venueID),
			"limit":    "1",
		}).
		SetResult(&rows).
		Get("/bookmarks")
	if err := do(resp, err); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
