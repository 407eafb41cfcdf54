package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"quietspot/internal/geo"
	"quietspot/internal/services"
)

const geoRefreshTimeout = 30 * time.Second

// startGeoRefresher rebuilds the geo index once and then on spec. The
// returned cron must be stopped on shutdown.
func startGeoRefresher(ctx context.Context, spec string, venues *services.VenueService, locator *geo.VenueLocator, logger *log.Entry) (*cron.Cron, error) {
	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, geoRefreshTimeout)
		defer cancel()

		all, err := venues.GetVenues(runCtx)
		if err != nil {
			logger.WithError(err).Error("geo refresher: failed to list venues")
			return
		}
		indexed, err := locator.Reindex(runCtx, all)
		if err != nil {
			logger.WithError(err).Error("geo refresher: failed to rebuild index")
			return
		}
		logger.Debugf("geo refresher: indexed %d venues", indexed)
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, run); err != nil {
		return nil, err
	}

	run()
	c.Start()
	return c, nil
}
