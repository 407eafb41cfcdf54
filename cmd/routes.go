package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)

	public := func(pattern string, h http.HandlerFunc) http.Handler {
		return standardMiddleware.Append(app.measure(pattern)).ThenFunc(h)
	}
	authed := func(pattern string, h http.HandlerFunc) http.Handler {
		return standardMiddleware.Append(app.measure(pattern), app.requireUser).ThenFunc(h)
	}

	mux := pat.New()

	// Venues
	mux.Get("/venues", public("/venues", app.venueHandler.GetVenues))
	mux.Get("/venues/nearby", public("/venues/nearby", app.venueHandler.GetNearbyVenues))
	mux.Get("/venues/:id/reviews", public("/venues/:id/reviews", app.reviewHandler.GetReviewsByVenueID))
	mux.Get("/venues/:id", public("/venues/:id", app.venueHandler.GetVenueByID))

	// Reviews
	mux.Post("/reviews", authed("/reviews", app.reviewHandler.CreateReview))

	// Bookmarks
	mux.Get("/bookmarks", authed("/bookmarks", app.bookmarkHandler.GetUserBookmarks))
	mux.Post("/bookmarks", authed("/bookmarks", app.bookmarkHandler.AddBookmark))
	mux.Del("/bookmarks/venue/:venue_id", authed("/bookmarks/venue/:venue_id", app.bookmarkHandler.RemoveBookmark))
	mux.Get("/bookmarks/check/venue/:venue_id", authed("/bookmarks/check/venue/:venue_id", app.bookmarkHandler.IsBookmarked))

	// Map
	mux.Get("/map/config", public("/map/config", app.mapHandler.GetConfig))

	// Live feed; the upgrade needs the raw connection.
	mux.Get("/ws/venues/:id", alice.New(app.recoverPanic, app.logRequest).ThenFunc(app.feedHandler.Subscribe))

	mux.Get("/health", standardMiddleware.ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	mux.Get("/metrics", promhttp.Handler())

	return mux
}
