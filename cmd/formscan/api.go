package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/formscan/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Formscan server via HTTP.

These commands require a running server (formscan serve).
Use --server to specify a custom server URL.

Examples:
  formscan api health                          # Check server health
  formscan api health --wait                   # Wait until the server is up
  formscan api extract doc.pdf -f "Total"      # Extract fields from a document
  formscan api sessions get <id>               # Inspect a session`,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	for _, ep := range endpoints.All() {
		if cmd := ep.Command(getServerURL); cmd != nil {
			apiCmd.AddCommand(cmd)
		}
	}

	rootCmd.AddCommand(apiCmd)
}
