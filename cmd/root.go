package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"hootroot/pkg/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hootroot",
	Short: "Transit directions from HopStop in a familiar routes/legs/steps shape",
	Long: `hootroot asks HopStop for public transit directions between two places,
translates them into a maps-style directions result and prints, exports or serves them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
