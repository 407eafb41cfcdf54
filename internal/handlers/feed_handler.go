package handlers

import (
	"net/http"

	"quietspot/internal/feed"
)

type FeedHandler struct {
	Hub *feed.Hub
}

// Subscribe upgrades the connection and streams review events for a venue.
func (h *FeedHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	venueID, ok := idParam(r, "id")
	if !ok {
		http.Error(w, "Invalid venue ID", http.StatusBadRequest)
		return
	}
	h.Hub.Serve(w, r, venueID)
}
