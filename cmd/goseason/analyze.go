package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goseason/analysis"
	"github.com/sartorproj/goseason/config"
)

func analyzeCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "analyze <file.csv>",
		Short: "Analyze a CSV file and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}
			logger := cfg.NewLogger()
			logger.SetOutput(cmd.ErrOrStderr())

			report, err := runAnalyze(cmd, args[0], analysis.New(analysis.WithLogger(logger)))
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(report)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, a *analysis.Analyzer) (*analysis.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return a.Analyze(cmd.Context(), f)
}

// reportError writes {"error": msg} to w.
func reportError(w io.Writer, err error) error {
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
	return errAlreadyReported
}
