package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"quietspot/internal/models"
	"quietspot/internal/rating"
)

var reviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "quietspot_reviews_created_total",
	Help: "Reviews successfully written to the backend",
})

type ReviewService struct {
	Reviews ReviewStore
	// Feed is optional.
	Feed Publisher
	Log  *log.Entry
}

// CreateReview stores the review and then pushes it, together with the
// venue's new averages, to live subscribers. The push is best effort and
// never fails the create.
func (s *ReviewService) CreateReview(ctx context.Context, review models.NewReview) (models.Review, error) {
	created, err := s.Reviews.CreateReview(ctx, review)
	if err != nil {
		return models.Review{}, err
	}
	reviewsCreated.Inc()

	if s.Feed != nil {
		s.publish(ctx, created)
	}
	return created, nil
}

func (s *ReviewService) publish(ctx context.Context, created models.Review) {
	reviews, err := s.Reviews.GetReviewsByVenueID(ctx, created.VenueID)
	if err != nil {
		if s.Log != nil {
			s.Log.WithError(err).WithField("venue_id", created.VenueID).Warn("skipping review feed update")
		}
		return
	}
	s.Feed.Publish(created.VenueID, models.ReviewEvent{
		Type:           models.ReviewCreatedEvent,
		Review:         created,
		AverageRatings: rating.CalculateAverageRatings(reviews),
	})
}

func (s *ReviewService) GetReviewsByVenueID(ctx context.Context, venueID string) ([]models.Review, error) {
	return s.Reviews.GetReviewsByVenueID(ctx, venueID)
}
