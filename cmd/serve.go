package cmd

import (
	"log"

	"hootroot/pkg/config"
	"hootroot/pkg/directions"
	"hootroot/pkg/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve directions as JSON over HTTP",
	Long:  `Starts an HTTP server answering GET /directions?origin=&destination=&mode=&when= with a directions result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		saved, err := config.Load()
		if err != nil {
			return err
		}

		r := server.New(directions.NewPlanner(saved.Resolved()))

		log.Printf("hootroot directions server starting on %s", addr)
		return r.Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
