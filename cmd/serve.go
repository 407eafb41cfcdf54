package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"quietspot/internal/config"
	"quietspot/internal/geo"
	"quietspot/internal/mapbox"
	"quietspot/utils"
)

var defaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

type ServeFlags struct {
	Addr            string
	ShutdownTimeout time.Duration
}

func NewServeFlags() *ServeFlags {
	return &ServeFlags{ShutdownTimeout: 10 * time.Second}
}

func (f *ServeFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Addr, "addr", f.Addr, "HTTP network address, overrides server.address")
	fs.DurationVar(&f.ShutdownTimeout, "shutdown-timeout", f.ShutdownTimeout, "How long to wait for in-flight requests on shutdown")
}

func (f *ServeFlags) Validate() error {
	if f.ShutdownTimeout <= 0 {
		return errors.New("--shutdown-timeout must be positive")
	}
	return nil
}

func (f *ServeFlags) Run(ctx context.Context) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if f.Addr != "" {
		cfg.Server.Address = f.Addr
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	maps, err := mapbox.New(cfg.Mapbox.AccessToken)
	if err != nil {
		return err
	}
	maps = maps.Override(cfg.Mapbox.Style, cfg.Mapbox.Center, cfg.Mapbox.Zoom)

	tokens, err := utils.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		return errors.Wrap(err, "token manager")
	}

	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.close()

	rdb, err := openRedis(cfg)
	if err != nil {
		return err
	}
	var locator *geo.VenueLocator
	if rdb != nil {
		defer rdb.Close()
		locator = geo.NewVenueLocator(rdb)
	}

	logger := log.WithField("component", "api")
	app := initializeApp(b, appDeps{
		tokens:   tokens,
		maps:     maps,
		locator:  locator,
		registry: prometheus.DefaultRegisterer,
		logger:   logger,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.hub.Run(ctx)

	if locator != nil {
		refresher, err := startGeoRefresher(ctx, cfg.Geo.RefreshSpec, app.venueService, locator, log.WithField("component", "geo"))
		if err != nil {
			return errors.Wrapf(err, "schedule geo refresh %q", cfg.Geo.RefreshSpec)
		}
		defer refresher.Stop()
	}

	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultAllowedOrigins
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	errorWriter := log.StandardLogger().WriterLevel(log.ErrorLevel)
	defer errorWriter.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		ErrorLog:     stdlog.New(errorWriter, "", 0),
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", cfg.Server.Address)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), f.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	f := NewServeFlags()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return err
			}
			return f.Run(cmd.Context())
		},
	}

	f.BindFlags(cmd.Flags())
	rootCmd.AddCommand(cmd)
}
