package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quatton/portfolio/pkg/plog"
)

var logger = plog.NewFromEnv()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "strikecloud",
	Short: "Strike game API server",
	Long:  `strikecloud serves the portfolio Strike Game API and manages its database.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
