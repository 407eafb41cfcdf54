package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"quietspot/internal/config"
	"quietspot/internal/models"
	"quietspot/internal/services"
	"quietspot/utils"
)

func printSummary(w io.Writer, v models.VenueWithReviews) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\n", v.Name, v.Address)
	if v.Category != nil {
		fmt.Fprintf(tw, "Category:\t%s\n", *v.Category)
	}
	fmt.Fprintf(tw, "Quietness:\t%.1f\n", v.AverageRatings.Quietness)
	fmt.Fprintf(tw, "Comfort:\t%.1f\n", v.AverageRatings.Comfort)
	fmt.Fprintf(tw, "Lighting:\t%.1f\n", v.AverageRatings.Lighting)
	fmt.Fprintf(tw, "Overall:\t%.1f\t(%d reviews)\n", v.AverageRatings.Overall, len(v.Reviews))

	for _, r := range v.Reviews {
		fmt.Fprintf(tw, "%s\t%.1f / %.1f / %.1f\t%s\n",
			utils.FormatDate(r.CreatedAt), r.Quietness, r.Comfort, r.Lighting, r.Text)
	}
	return tw.Flush()
}

func init() {
	cmd := &cobra.Command{
		Use:   "summary <venue-id>",
		Short: "Print a venue with its reviews and average ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := uuid.Validate(args[0]); err != nil {
				return errors.Wrap(err, "venue id")
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			b, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer b.close()

			svc := &services.VenueService{Venues: b.venues, Reviews: b.reviews}
			venue, err := svc.GetVenueByID(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, models.ErrNoRecord) {
					return errors.Errorf("venue %s not found", args[0])
				}
				return err
			}
			return printSummary(cmd.OutOrStdout(), venue)
		},
	}

	rootCmd.AddCommand(cmd)
}
