package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// idParam returns the named parameter when it is a UUID.
func idParam(r *http.Request, name string) (string, bool) {
	id := getParam(r, name)
	return id, validID(id)
}

func floatParam(r *http.Request, name string) (float64, bool) {
	v, err := strconv.ParseFloat(getParam(r, name), 64)
	return v, err == nil
}

// optionalInt returns def when the parameter is absent.
func optionalInt(r *http.Request, name string, def int) (int, bool) {
	raw := getParam(r, name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func optionalFloat(r *http.Request, name string, def float64) (float64, bool) {
	raw := getParam(r, name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}
