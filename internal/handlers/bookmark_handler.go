package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"quietspot/internal/services"
)

type BookmarkHandler struct {
	Service *services.BookmarkService
}

type bookmarkRequest struct {
	VenueID string `json:"venue_id"`
}

func (h *BookmarkHandler) GetUserBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	venues, err := h.Service.GetUserBookmarks(r.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("GetUserBookmarks failed")
		http.Error(w, "Failed to get bookmarks", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(venues)
}

func (h *BookmarkHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req bookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !validID(req.VenueID) {
		http.Error(w, "Invalid venue_id", http.StatusBadRequest)
		return
	}

	bookmark, err := h.Service.AddBookmark(r.Context(), userID, req.VenueID)
	if err != nil {
		backendError(w, "AddBookmark", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(bookmark)
}

func (h *BookmarkHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	venueID, ok := idParam(r, "venue_id")
	if !ok {
		http.Error(w, "Invalid venue ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RemoveBookmark(r.Context(), userID, venueID); err != nil {
		backendError(w, "RemoveBookmark", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookmarkHandler) IsBookmarked(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	venueID, ok := idParam(r, "venue_id")
	if !ok {
		http.Error(w, "Invalid venue ID", http.StatusBadRequest)
		return
	}

	bookmarked, err := h.Service.IsBookmarked(r.Context(), userID, venueID)
	if err != nil {
		backendError(w, "IsBookmarked", err)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"bookmarked": bookmarked})
}
