package handlers

import (
	"encoding/json"
	"net/http"

	"quietspot/internal/mapbox"
)

type MapHandler struct {
	Settings mapbox.Settings
}

func (h *MapHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.Settings)
}
