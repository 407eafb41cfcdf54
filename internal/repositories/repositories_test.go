package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"quietspot/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to :memory: would get its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db, DriverSQLite))
	return db
}

func seedVenue(t *testing.T, db *sql.DB, name string, createdAt time.Time) models.Venue {
	t.Helper()

	category := "cafe"
	v := models.Venue{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   name + " street 1",
		Latitude:  40.7128,
		Longitude: -74.006,
		Category:  &category,
		CreatedAt: createdAt.UTC(),
	}
	_, err := db.Exec(`INSERT INTO venues (id, name, address, latitude, longitude, description, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.Address, v.Latitude, v.Longitude, v.Description, v.Category, v.CreatedAt)
	require.NoError(t, err)
	return v
}

func seedReview(t *testing.T, db *sql.DB, venueID string, score float64, createdAt time.Time) models.Review {
	t.Helper()

	rev := models.Review{
		ID:        uuid.NewString(),
		VenueID:   venueID,
		UserID:    uuid.NewString(),
		Quietness: score,
		Comfort:   score,
		Lighting:  score,
		Text:      "ok",
		CreatedAt: createdAt.UTC(),
	}
	_, err := db.Exec(`INSERT INTO reviews (id, venue_id, user_id, quietness, comfort, lighting, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rev.ID, rev.VenueID, rev.UserID, rev.Quietness, rev.Comfort, rev.Lighting, rev.Text, rev.CreatedAt)
	require.NoError(t, err)
	return rev
}

func TestRebind(t *testing.T) {
	query := `SELECT id FROM bookmarks WHERE user_id = ? AND venue_id = ? LIMIT 1`

	assert.Equal(t, `SELECT id FROM bookmarks WHERE user_id = $1 AND venue_id = $2 LIMIT 1`, rebind(DriverPostgres, query))
	assert.Equal(t, query, rebind(DriverMySQL, query))
	assert.Equal(t, query, rebind(DriverSQLite, query))
}

func TestMigrateUnsupportedDriver(t *testing.T) {
	err := Migrate(context.Background(), nil, "oracle")
	assert.Error(t, err)
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Migrate(context.Background(), db, DriverSQLite))
}

func TestVenueRepository(t *testing.T) {
	db := openTestDB(t)
	repo := &VenueRepository{DB: db, Driver: DriverSQLite}
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	older := seedVenue(t, db, "Library", base)
	newer := seedVenue(t, db, "Reading Room", base.Add(time.Hour))

	t.Run("lists newest first", func(t *testing.T) {
		venues, err := repo.GetVenues(ctx)
		require.NoError(t, err)
		require.Len(t, venues, 2)
		assert.Equal(t, newer.ID, venues[0].ID)
		assert.Equal(t, older.ID, venues[1].ID)
		assert.Nil(t, venues[0].Description)
		require.NotNil(t, venues[0].Category)
		assert.Equal(t, "cafe", *venues[0].Category)
		assert.True(t, venues[0].CreatedAt.Equal(newer.CreatedAt))
	})

	t.Run("gets by id", func(t *testing.T) {
		v, err := repo.GetVenueByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, "Library", v.Name)
		assert.InDelta(t, -74.006, v.Longitude, 1e-9)
	})

	t.Run("missing venue", func(t *testing.T) {
		_, err := repo.GetVenueByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, models.ErrNoRecord)
	})
}

func TestVenueRepositoryEmpty(t *testing.T) {
	repo := &VenueRepository{DB: openTestDB(t), Driver: DriverSQLite}

	venues, err := repo.GetVenues(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, venues)
	assert.Empty(t, venues)
}

func TestReviewRepository(t *testing.T) {
	db := openTestDB(t)
	repo := &ReviewRepository{DB: db, Driver: DriverSQLite}
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	venue := seedVenue(t, db, "Library", base)
	first := seedReview(t, db, venue.ID, 3, base.Add(time.Minute))
	second := seedReview(t, db, venue.ID, 5, base.Add(2*time.Minute))

	t.Run("lists newest first", func(t *testing.T) {
		reviews, err := repo.GetReviewsByVenueID(ctx, venue.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, second.ID, reviews[0].ID)
		assert.Equal(t, first.ID, reviews[1].ID)
	})

	t.Run("creates review", func(t *testing.T) {
		userID := uuid.NewString()
		created, err := repo.CreateReview(ctx, models.NewReview{
			VenueID:   venue.ID,
			UserID:    userID,
			Quietness: 4,
			Comfort:   5,
			Lighting:  3,
			Text:      "Great place",
		})
		require.NoError(t, err)
		_, err = uuid.Parse(created.ID)
		assert.NoError(t, err)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Equal(t, userID, created.UserID)

		reviews, err := repo.GetReviewsByVenueID(ctx, venue.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 3)
		assert.Equal(t, created.ID, reviews[0].ID)
		assert.Equal(t, "Great place", reviews[0].Text)
		assert.Equal(t, 5.0, reviews[0].Comfort)
	})

	t.Run("unknown venue violates foreign key", func(t *testing.T) {
		_, err := repo.CreateReview(ctx, models.NewReview{VenueID: uuid.NewString(), UserID: uuid.NewString()})
		assert.Error(t, err)
	})

	t.Run("venue without reviews", func(t *testing.T) {
		reviews, err := repo.GetReviewsByVenueID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.NotNil(t, reviews)
		assert.Empty(t, reviews)
	})
}

func TestBookmarkRepository(t *testing.T) {
	db := openTestDB(t)
	repo := &BookmarkRepository{DB: db, Driver: DriverSQLite}
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	library := seedVenue(t, db, "Library", base)
	cafe := seedVenue(t, db, "Cafe", base.Add(time.Hour))
	userID := uuid.NewString()

	ok, err := repo.IsBookmarked(ctx, userID, library.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	b, err := repo.AddBookmark(ctx, userID, library.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, b.UserID)
	assert.Equal(t, library.ID, b.VenueID)
	assert.NotEmpty(t, b.ID)

	_, err = repo.AddBookmark(ctx, userID, cafe.ID)
	require.NoError(t, err)

	t.Run("duplicate is rejected by the backend", func(t *testing.T) {
		_, err := repo.AddBookmark(ctx, userID, library.ID)
		assert.Error(t, err)
	})

	t.Run("check", func(t *testing.T) {
		ok, err := repo.IsBookmarked(ctx, userID, library.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.IsBookmarked(ctx, uuid.NewString(), library.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list joins venues", func(t *testing.T) {
		venues, err := repo.GetBookmarksByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, venues, 2)
		names := []string{venues[0].Name, venues[1].Name}
		assert.ElementsMatch(t, []string{"Library", "Cafe"}, names)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, repo.RemoveBookmark(ctx, userID, library.ID))

		ok, err := repo.IsBookmarked(ctx, userID, library.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		venues, err := repo.GetBookmarksByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, venues, 1)
		assert.Equal(t, cafe.ID, venues[0].ID)
	})

	t.Run("removing a missing bookmark is not an error", func(t *testing.T) {
		assert.NoError(t, repo.RemoveBookmark(ctx, userID, uuid.NewString()))
	})
}
