// Command goseason analyzes a ds,y series from a CSV file or serves the
// analysis over HTTP.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errAlreadyReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goseason",
		Short: "Seasonal decomposition forecasting for daily series",
		Long: `goseason fits a piecewise-linear trend with weekly and yearly seasonality
to a ds,y series, scores it on the last 30% of the rows and reports accuracy,
seasonal shape and a preview of the most recent values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

// errAlreadyReported is returned by commands that have printed their own
// error output.
var errAlreadyReported = errors.New("goseason: error already reported")
