package cmd

import (
	"fmt"
	"strings"

	"hootroot/pkg/config"
	"hootroot/pkg/directions"
	"hootroot/pkg/hopstop"
	"hootroot/pkg/tui"

	"github.com/spf13/cobra"
)

var directionsCmd = &cobra.Command{
	Use:     "directions",
	Aliases: []string{"route"},
	Short:   "Plan a transit trip between two places",
	Long: `Geocodes both places, asks HopStop for directions and prints the route step by step.
Places may be addresses, place names or "lat,lng" pairs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, req, err := tripFromFlags(cmd)
		if err != nil {
			return err
		}

		d, err := tui.PlanWithSpinner(cmd.Context(), directions.NewPlanner(cfg), req)
		if err != nil {
			return fmt.Errorf("could not plan trip: %w", err)
		}

		tui.PrintRoute(d)
		return nil
	},
}

// tripFromFlags reads --from, --to, --mode and --when, filling gaps from the saved config
func tripFromFlags(cmd *cobra.Command) (config.AppConfig, directions.Request, error) {
	saved, err := config.Load()
	if err != nil {
		return config.AppConfig{}, directions.Request{}, err
	}
	cfg := saved.Resolved()

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	modeFlag, _ := cmd.Flags().GetString("mode")
	when, _ := cmd.Flags().GetString("when")

	if strings.TrimSpace(to) == "" {
		to = cfg.HomeAddress
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return cfg, directions.Request{}, fmt.Errorf("must specify --from and --to (or save a home address with 'hootroot config --set-home')")
	}

	if modeFlag == "" {
		modeFlag = cfg.DefaultMode
	}
	mode, err := directions.ParseTravelMode(modeFlag)
	if err != nil {
		return cfg, directions.Request{}, err
	}

	when = strings.TrimSpace(when)
	if err := hopstop.ValidateWhen(when); err != nil {
		return cfg, directions.Request{}, fmt.Errorf("--when: %w", err)
	}

	return cfg, directions.Request{
		Origin:      strings.TrimSpace(from),
		Destination: strings.TrimSpace(to),
		Mode:        mode,
		When:        when,
	}, nil
}

func addTripFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "Origin address, place name or lat,lng")
	cmd.Flags().StringP("to", "t", "", "Destination (defaults to your saved home address)")
	cmd.Flags().StringP("mode", "m", "", "Travel mode: publictransit, subwaying or bussing")
	cmd.Flags().StringP("when", "w", "now", "Departure time passed to HopStop: now or RFC 3339")
}

func init() {
	rootCmd.AddCommand(directionsCmd)
	addTripFlags(directionsCmd)
}
