package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"quietspot/internal/models"
	"quietspot/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

// CreateReview stores a review written by the authenticated user. Ratings are
// passed through as given.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var review models.NewReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !validID(review.VenueID) {
		http.Error(w, "Invalid venue_id", http.StatusBadRequest)
		return
	}
	review.UserID = userID

	created, err := h.Service.CreateReview(r.Context(), review)
	if err != nil {
		backendError(w, "CreateReview", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ReviewHandler) GetReviewsByVenueID(w http.ResponseWriter, r *http.Request) {
	venueID, ok := idParam(r, "id")
	if !ok {
		http.Error(w, "Invalid venue ID", http.StatusBadRequest)
		return
	}

	reviews, err := h.Service.GetReviewsByVenueID(r.Context(), venueID)
	if err != nil {
		log.WithError(err).WithField("venue_id", venueID).Error("GetReviewsByVenueID failed")
		http.Error(w, "Failed to get reviews", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reviews)
}
