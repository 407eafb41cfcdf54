package services

import (
	"context"

	"quietspot/internal/models"
)

type BookmarkService struct {
	Bookmarks BookmarkStore
}

func (s *BookmarkService) GetUserBookmarks(ctx context.Context, userID string) ([]models.Venue, error) {
	return s.Bookmarks.GetBookmarksByUser(ctx, userID)
}

func (s *BookmarkService) AddBookmark(ctx context.Context, userID, venueID string) (models.Bookmark, error) {
	return s.Bookmarks.AddBookmark(ctx, userID, venueID)
}

func (s *BookmarkService) RemoveBookmark(ctx context.Context, userID, venueID string) error {
	return s.Bookmarks.RemoveBookmark(ctx, userID, venueID)
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, venueID string) (bool, error) {
	return s.Bookmarks.IsBookmarked(ctx, userID, venueID)
}
