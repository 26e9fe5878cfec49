package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formscan/internal/api"
	"github.com/jackzampolin/formscan/internal/config"
	"github.com/jackzampolin/formscan/internal/extract"
	"github.com/jackzampolin/formscan/internal/providers"
	"github.com/jackzampolin/formscan/internal/raster"
)

var (
	extractFields   []string
	extractPage     int
	extractProvider string
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf-file>",
	Short: "Extract fields from a document without a server",
	Long: `Extract named fields from one page of a PDF document.

This runs the full pipeline locally: render the page, call the
configured vision model, and print the parsed field values. No server
is needed, but provider API keys must be configured.

Examples:
  formscan extract invoice.pdf -f "Invoice Number" -f "Total Amount"
  formscan extract contract.pdf --page 3 -f "Effective Date" -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if extractPage < 1 {
			return fmt.Errorf("page number must be 1 or greater")
		}

		pdfBytes, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		if len(extractFields) == 0 {
			extractFields = cfg.Defaults.Fields
		}
		if len(extractFields) == 0 {
			return fmt.Errorf("no fields requested: pass at least one --field")
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))

		registry := providers.NewRegistry()
		registry.SetLogger(logger)
		registry.Reload(cfg.ToRegistryConfig())

		rasterizer := raster.New(raster.Config{
			DPI:       cfg.Raster.DPI,
			CacheSize: cfg.Raster.CacheSize,
			Logger:    logger,
		})
		if err := rasterizer.CheckBackend(); err != nil {
			return err
		}

		image, err := rasterizer.Render(ctx, pdfBytes, extractPage-1)
		if err != nil {
			return err
		}

		extractor := extract.NewClient(registry, extract.Config{
			DefaultProvider: cfg.Defaults.Provider,
			MaxTokens:       cfg.Extraction.MaxTokens,
			Temperature:     cfg.Extraction.Temperature,
			StrictKeys:      cfg.Extraction.StrictKeys,
			CacheEnabled:    false, // One-shot run, nothing to reuse
			Logger:          logger,
		})

		result, err := extractor.Extract(ctx, &extract.Request{
			Image:    image,
			Fields:   extractFields,
			Provider: extractProvider,
		})
		if err != nil {
			return err
		}

		return api.Output(result)
	},
}

func init() {
	extractCmd.Flags().StringArrayVarP(&extractFields, "field", "f", nil, "Field to extract (repeatable)")
	extractCmd.Flags().IntVarP(&extractPage, "page", "p", 1, "Page number (1-based)")
	extractCmd.Flags().StringVar(&extractProvider, "provider", "", "Provider name (default from config)")

	rootCmd.AddCommand(extractCmd)
}
