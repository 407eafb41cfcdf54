package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	metrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	_ "modernc.org/sqlite"

	"quietspot/internal/config"
	"quietspot/internal/feed"
	"quietspot/internal/geo"
	"quietspot/internal/handlers"
	"quietspot/internal/mapbox"
	"quietspot/internal/repositories"
	"quietspot/internal/services"
	"quietspot/internal/supabase"
	"quietspot/utils"
)

type application struct {
	logger  *log.Entry
	tokens  *utils.Manager
	metrics middleware.Middleware
	hub     *feed.Hub

	venueService *services.VenueService

	venueHandler    *handlers.VenueHandler
	reviewHandler   *handlers.ReviewHandler
	bookmarkHandler *handlers.BookmarkHandler
	mapHandler      *handlers.MapHandler
	feedHandler     *handlers.FeedHandler
}

// backend is the set of stores the services run on, plus whatever must be
// released on shutdown.
type backend struct {
	venues    services.VenueStore
	reviews   services.ReviewStore
	bookmarks services.BookmarkStore
	close     func() error
}

// appDeps carries the optional pieces of an application.
type appDeps struct {
	tokens   *utils.Manager
	maps     mapbox.Settings
	locator  *geo.VenueLocator
	registry prometheus.Registerer
	logger   *log.Entry
}

func initializeApp(b backend, deps appDeps) *application {
	hub := feed.NewHub(deps.logger.WithField("component", "feed"))

	venueService := &services.VenueService{Venues: b.venues, Reviews: b.reviews}
	if deps.locator != nil {
		venueService.Locator = deps.locator
	}
	reviewService := &services.ReviewService{
		Reviews: b.reviews,
		Feed:    hub,
		Log:     deps.logger.WithField("component", "reviews"),
	}
	bookmarkService := &services.BookmarkService{Bookmarks: b.bookmarks}

	mdlw := middleware.New(middleware.Config{
		Recorder: metrics.NewRecorder(metrics.Config{Registry: deps.registry}),
	})

	return &application{
		logger:  deps.logger,
		tokens:  deps.tokens,
		metrics: mdlw,
		hub:     hub,

		venueService: venueService,

		venueHandler:    &handlers.VenueHandler{Service: venueService},
		reviewHandler:   &handlers.ReviewHandler{Service: reviewService},
		bookmarkHandler: &handlers.BookmarkHandler{Service: bookmarkService},
		mapHandler:      &handlers.MapHandler{Settings: deps.maps},
		feedHandler:     &handlers.FeedHandler{Hub: hub},
	}
}

// mysqlConfig parses dsn and forces DATETIME columns to scan into
// time.Time in UTC.
func mysqlConfig(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse mysql dsn")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg, nil
}

func openDB(driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	if driver == repositories.DriverMySQL {
		cfg, err := mysqlConfig(dsn)
		if err != nil {
			return nil, err
		}
		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "mysql connector")
		}
		db = sql.OpenDB(connector)
	} else {
		var err error
		db, err = sql.Open(driver, dsn)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s database", driver)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s database", driver)
	}
	if driver == repositories.DriverSQLite {
		// Foreign keys are off by default and the pragma is per connection.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "enable sqlite foreign keys")
		}
	} else {
		db.SetMaxIdleConns(35)
	}
	log.WithField("driver", driver).Info("connected to database")
	return db, nil
}

func openBackend(cfg config.Config) (backend, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		client := supabase.New(cfg.Supabase.URL, cfg.Supabase.Key)
		return backend{
			venues:    client,
			reviews:   client,
			bookmarks: client,
			close:     func() error { return nil },
		}, nil
	case config.BackendSQL:
		db, err := openDB(cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return backend{}, err
		}
		driver := cfg.Database.Driver
		return backend{
			venues:    &repositories.VenueRepository{DB: db, Driver: driver},
			reviews:   &repositories.ReviewRepository{DB: db, Driver: driver},
			bookmarks: &repositories.BookmarkRepository{DB: db, Driver: driver},
			close:     db.Close,
		}, nil
	default:
		return backend{}, errors.Errorf("unknown backend %q", cfg.Backend)
	}
}

// openRedis returns nil when no address is configured.
func openRedis(cfg config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", cfg.Redis.Addr)
	}
	return rdb, nil
}
