package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"quietspot/internal/models"
	"quietspot/internal/services"
	"quietspot/utils"
)

const (
	defaultNearbyRadius = 1000
	minNearbyRadius     = 100
	maxNearbyRadius     = 50000

	defaultNearbyLimit = 20
	maxNearbyLimit     = 100
)

type VenueHandler struct {
	Service *services.VenueService
}

func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.Service.GetVenues(r.Context())
	if err != nil {
		log.WithError(err).Error("GetVenues failed")
		http.Error(w, "Failed to get venues", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(venues)
}

func (h *VenueHandler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		http.Error(w, "Invalid venue ID", http.StatusBadRequest)
		return
	}

	venue, err := h.Service.GetVenueByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			http.Error(w, "Venue not found", http.StatusNotFound)
			return
		}
		log.WithError(err).WithField("venue_id", id).Error("GetVenueByID failed")
		http.Error(w, "Failed to get venue", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(venue)
}

func (h *VenueHandler) GetNearbyVenues(w http.ResponseWriter, r *http.Request) {
	lat, okLat := floatParam(r, "lat")
	lon, okLon := floatParam(r, "lon")
	if !okLat || !okLon || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		http.Error(w, "lat and lon are required", http.StatusBadRequest)
		return
	}
	radius, ok := optionalFloat(r, "radius", defaultNearbyRadius)
	if !ok {
		http.Error(w, "Invalid radius", http.StatusBadRequest)
		return
	}
	limit, ok := optionalInt(r, "limit", defaultNearbyLimit)
	if !ok {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	radius = utils.Clamp(radius, minNearbyRadius, maxNearbyRadius)
	limit = utils.Clamp(limit, 1, maxNearbyLimit)

	venues, err := h.Service.GetNearbyVenues(r.Context(), lat, lon, radius, limit)
	if err != nil {
		log.WithError(err).Error("GetNearbyVenues failed")
		http.Error(w, "Failed to get nearby venues", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(venues)
}
