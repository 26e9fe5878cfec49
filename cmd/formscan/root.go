package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/formscan/internal/api"
	"github.com/jackzampolin/formscan/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "formscan",
	Short: "Extract structured fields from document pages with vision models",
	Long: `Formscan extracts named fields from PDF documents using multimodal
vision models.

Upload a PDF, pick a page, and name the fields you want (invoice number,
customer name, totals, dates). The page is rendered to an image, sent to
a vision model alongside your field list, and the reply is parsed into a
field/value mapping.

Run "formscan serve" to start the web UI and HTTP API, or
"formscan extract" for one-shot extraction from the command line.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.formscan/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "formscan home directory (default: ~/.formscan)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
