package cmd

import (
	"fmt"

	"hootroot/pkg/config"
	"hootroot/pkg/directions"
	"hootroot/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hootroot configuration",
	Long:  "View or edit your local configuration settings (home address, default mode, HopStop proxy, direct route fallback).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		changed := false

		if setHome, _ := cmd.Flags().GetString("set-home"); setHome != "" {
			place, err := tui.LookupHome(cmd.Context(), cfg.Resolved().GeocoderURL, setHome)
			if err != nil {
				return err
			}
			cfg.HomeAddress = place.DisplayName
			fmt.Printf("✅ Home address saved as: %s (%s, %s)\n", place.DisplayName, place.Lat, place.Lon)
			changed = true
		}

		if setMode, _ := cmd.Flags().GetString("set-mode"); setMode != "" {
			mode, err := directions.ParseTravelMode(setMode)
			if err != nil {
				return err
			}
			cfg.DefaultMode = string(mode)
			changed = true
		}

		if u, _ := cmd.Flags().GetString("set-hopstop-url"); u != "" {
			cfg.HopStopURL = u
			changed = true
		}

		if cmd.Flags().Changed("direct-default") {
			cfg.TransitDirectDefault, _ = cmd.Flags().GetBool("direct-default")
			changed = true
		}

		if cmd.Flags().Changed("cache") {
			cfg.CacheEnabled, _ = cmd.Flags().GetBool("cache")
			changed = true
		}

		if changed {
			return config.Save(cfg)
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-home", "s", "", "Set your home address for trips home")
	configCmd.Flags().String("set-mode", "", "Set the default travel mode")
	configCmd.Flags().String("set-hopstop-url", "", "Set the HopStop proxy base URL")
	configCmd.Flags().Bool("direct-default", false, "Fall back to a direct route when transit directions fail")
	configCmd.Flags().Bool("cache", false, "Cache HopStop answers on disk for 15 minutes")
}
