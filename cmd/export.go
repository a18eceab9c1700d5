package cmd

import (
	"fmt"
	"os"
	"time"

	"hootroot/pkg/directions"
	"hootroot/pkg/exporter"
	"hootroot/pkg/tui"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a planned trip to an ICS file",
	Long:  `Plan a trip and write each step as a calendar event, laid end to end from the departure time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, req, err := tripFromFlags(cmd)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		departFlag, _ := cmd.Flags().GetString("depart")

		departure, err := parseDeparture(departFlag, time.Now())
		if err != nil {
			return err
		}

		d, err := tui.PlanWithSpinner(cmd.Context(), directions.NewPlanner(cfg), req)
		if err != nil {
			return fmt.Errorf("could not plan trip: %w", err)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(d.DirectionsResult, departure, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d steps to %s\n", len(d.Segments), output)
		return nil
	},
}

// parseDeparture accepts "15:04" (today, local time) or RFC 3339. Empty means now.
func parseDeparture(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --depart %q: use 15:04 or RFC 3339", s)
	}
	return t, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addTripFlags(exportCmd)

	exportCmd.Flags().StringP("output", "o", "trip.ics", "Output file path")
	exportCmd.Flags().StringP("depart", "d", "", "Departure time for the calendar (15:04 or RFC 3339), defaults to now")
}
