package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quietspot/internal/models"
)

var errBackend = errors.New("backend unavailable")

func testVenues() []models.Venue {
	return []models.Venue{
		{ID: "v-times-square", Name: "Times Square Library", Latitude: 40.758, Longitude: -73.9855},
		{ID: "v-city-hall", Name: "City Hall Reading Room", Latitude: 40.7128, Longitude: -74.006},
		{ID: "v-boston", Name: "Boston Public Library", Latitude: 42.3493, Longitude: -71.0782},
	}
}

func TestVenueServiceGetVenueByID(t *testing.T) {
	store := &memStore{venues: testVenues()}
	store.reviews = []models.Review{
		{ID: "r2", VenueID: "v-city-hall", Quietness: 5, Comfort: 4, Lighting: 5},
		{ID: "r1", VenueID: "v-city-hall", Quietness: 4, Comfort: 5, Lighting: 3},
		{ID: "r3", VenueID: "v-boston", Quietness: 1, Comfort: 1, Lighting: 1},
	}
	svc := &VenueService{Venues: store, Reviews: store}

	got, err := svc.GetVenueByID(context.Background(), "v-city-hall")
	require.NoError(t, err)

	assert.Equal(t, "City Hall Reading Room", got.Name)
	require.Len(t, got.Reviews, 2)
	assert.Equal(t, "r2", got.Reviews[0].ID)
	assert.Equal(t, models.RatingSummary{Quietness: 4.5, Comfort: 4.5, Lighting: 4, Overall: 4.3}, got.AverageRatings)
}

func TestVenueServiceGetVenueByIDWithoutReviews(t *testing.T) {
	store := &memStore{venues: testVenues()}
	svc := &VenueService{Venues: store, Reviews: store}

	got, err := svc.GetVenueByID(context.Background(), "v-boston")
	require.NoError(t, err)

	assert.NotNil(t, got.Reviews)
	assert.Empty(t, got.Reviews)
	assert.Equal(t, models.RatingSummary{}, got.AverageRatings)
}

func TestVenueServiceGetVenueByIDErrors(t *testing.T) {
	t.Run("missing venue", func(t *testing.T) {
		store := &memStore{venues: testVenues()}
		svc := &VenueService{Venues: store, Reviews: store}

		_, err := svc.GetVenueByID(context.Background(), "nope")
		assert.ErrorIs(t, err, models.ErrNoRecord)
	})

	t.Run("venue lookup failure passes through", func(t *testing.T) {
		store := &memStore{err: errBackend}
		svc := &VenueService{Venues: store, Reviews: store}

		_, err := svc.GetVenueByID(context.Background(), "v-boston")
		assert.Same(t, errBackend, err)
	})

	t.Run("review lookup failure passes through", func(t *testing.T) {
		store := &memStore{venues: testVenues(), reviewErr: errBackend}
		svc := &VenueService{Venues: store, Reviews: store}

		_, err := svc.GetVenueByID(context.Background(), "v-boston")
		assert.Same(t, errBackend, err)
	})
}

func TestVenueServiceGetNearbyVenuesScan(t *testing.T) {
	store := &memStore{venues: testVenues()}
	svc := &VenueService{Venues: store, Reviews: store}

	got, err := svc.GetNearbyVenues(context.Background(), 40.7128, -74.006, 10000, 10)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "v-city-hall", got[0].ID)
	assert.InDelta(t, 0, got[0].DistanceM, 1e-6)
	assert.Equal(t, "v-times-square", got[1].ID)
	assert.InDelta(t, 5300, got[1].DistanceM, 300)

	limited, err := svc.GetNearbyVenues(context.Background(), 40.7128, -74.006, 1e7, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "v-city-hall", limited[0].ID)
}

func TestVenueServiceGetNearbyVenuesWithLocator(t *testing.T) {
	store := &memStore{venues: testVenues()}
	locator := &fixedLocator{hits: []models.VenueDistance{
		{VenueID: "v-times-square", DistanceM: 12},
		{VenueID: "v-deleted", DistanceM: 40},
		{VenueID: "v-city-hall", DistanceM: 5300},
	}}
	svc := &VenueService{Venues: store, Reviews: store, Locator: locator}

	got, err := svc.GetNearbyVenues(context.Background(), 40.758, -73.9855, 6000, 5)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "v-times-square", got[0].ID)
	assert.Equal(t, 12.0, got[0].DistanceM)
	assert.Equal(t, "v-city-hall", got[1].ID)
	assert.Equal(t, -73.9855, locator.got.lon)
	assert.Equal(t, 40.758, locator.got.lat)
	assert.Equal(t, 5, locator.got.limit)
}

func TestVenueServiceGetNearbyVenuesLocatorError(t *testing.T) {
	store := &memStore{venues: testVenues()}
	svc := &VenueService{Venues: store, Reviews: store, Locator: &fixedLocator{err: errBackend}}

	_, err := svc.GetNearbyVenues(context.Background(), 40.758, -73.9855, 6000, 5)
	assert.Same(t, errBackend, err)
}

func TestReviewServiceCreateReviewPublishes(t *testing.T) {
	store := &memStore{venues: testVenues()}
	store.reviews = []models.Review{{ID: "old", VenueID: "v-boston", Quietness: 4, Comfort: 5, Lighting: 3}}
	feed := &recordingPublisher{}
	svc := &ReviewService{Reviews: store, Feed: feed}

	created, err := svc.CreateReview(context.Background(), models.NewReview{
		VenueID: "v-boston", UserID: "u1", Quietness: 5, Comfort: 4, Lighting: 5, Text: "Excellent!",
	})
	require.NoError(t, err)
	assert.Equal(t, "Excellent!", created.Text)

	require.Len(t, feed.events, 1)
	assert.Equal(t, "v-boston", feed.venues[0])
	assert.Equal(t, models.ReviewCreatedEvent, feed.events[0].Type)
	assert.Equal(t, created, feed.events[0].Review)
	assert.Equal(t, models.RatingSummary{Quietness: 4.5, Comfort: 4.5, Lighting: 4, Overall: 4.3}, feed.events[0].AverageRatings)
}

func TestReviewServiceCreateReviewFeedFailureIsIgnored(t *testing.T) {
	store := &memStore{venues: testVenues(), reviewErr: errBackend}
	feed := &recordingPublisher{}
	svc := &ReviewService{Reviews: store, Feed: feed}

	_, err := svc.CreateReview(context.Background(), models.NewReview{VenueID: "v-boston", UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, feed.events)
}

func TestReviewServiceCreateReviewError(t *testing.T) {
	store := &memStore{err: errBackend}
	feed := &recordingPublisher{}
	svc := &ReviewService{Reviews: store, Feed: feed}

	_, err := svc.CreateReview(context.Background(), models.NewReview{VenueID: "v-boston"})
	assert.Same(t, errBackend, err)
	assert.Empty(t, feed.events)
}

func TestBookmarkService(t *testing.T) {
	store := &memStore{venues: testVenues()}
	svc := &BookmarkService{Bookmarks: store}
	ctx := context.Background()

	_, err := svc.AddBookmark(ctx, "u1", "v-boston")
	require.NoError(t, err)

	ok, err := svc.IsBookmarked(ctx, "u1", "v-boston")
	require.NoError(t, err)
	assert.True(t, ok)

	venues, err := svc.GetUserBookmarks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Boston Public Library", venues[0].Name)

	require.NoError(t, svc.RemoveBookmark(ctx, "u1", "v-boston"))
	ok, err = svc.IsBookmarked(ctx, "u1", "v-boston")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookmarkServicePropagatesErrors(t *testing.T) {
	svc := &BookmarkService{Bookmarks: &memStore{err: errBackend}}
	ctx := context.Background()

	_, err := svc.GetUserBookmarks(ctx, "u1")
	assert.Same(t, errBackend, err)
	_, err = svc.AddBookmark(ctx, "u1", "v")
	assert.Same(t, errBackend, err)
	assert.Same(t, errBackend, svc.RemoveBookmark(ctx, "u1", "v"))
	_, err = svc.IsBookmarked(ctx, "u1", "v")
	assert.Same(t, errBackend, err)
}
