package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quietspot/internal/config"
	"quietspot/internal/repositories"
)

func init() {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the venues, reviews and bookmarks tables for the configured SQL driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cfg.Backend != config.BackendSQL {
				return errors.Errorf("migrate only applies to the sql backend, configured backend is %q", cfg.Backend)
			}
			if !repositories.SupportedDriver(cfg.Database.Driver) {
				return errors.Errorf("unsupported database driver %q", cfg.Database.Driver)
			}

			db, err := openDB(cfg.Database.Driver, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repositories.Migrate(cmd.Context(), db, cfg.Database.Driver); err != nil {
				return errors.Wrap(err, "migrate")
			}
			log.WithField("driver", cfg.Database.Driver).Info("schema is up to date")
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
