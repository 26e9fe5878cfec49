// Package raster renders single PDF pages to PNG images.
//
// Page counts and document validation use pdfcpu; the actual rendering
// shells out to pdftoppm (poppler-utils), which must be on PATH.
package raster

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jackzampolin/formscan/internal/cache"
)

const (
	// DefaultDPI is the render resolution when none is configured.
	DefaultDPI = 200

	// DefaultCacheSize bounds the rendered-page LRU cache.
	DefaultCacheSize = 16
)

// RenderError reports a failed rasterization: unreadable document,
// out-of-range page, or missing rendering backend.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rasterize: %s: %v", e.Reason, e.Err)
	}
	return "rasterize: " + e.Reason
}

func (e *RenderError) Unwrap() error { return e.Err }

// Config holds rasterizer settings.
type Config struct {
	// DPI is the render resolution (default: 200).
	DPI int
	// CacheSize bounds the rendered-page cache (default: 16 pages).
	CacheSize int
	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// Rasterizer converts one page of a PDF byte buffer into a PNG image.
// Renders are memoized by (document digest, page index) in a bounded LRU,
// so repeated actions on the same page do not re-render.
type Rasterizer struct {
	dpi    int
	cache  *cache.LRU[string, []byte]
	logger *slog.Logger

	// renderPage is swapped out in tests to avoid requiring pdftoppm.
	renderPage func(ctx context.Context, pdfPath string, page int) ([]byte, error)
}

// New creates a Rasterizer with the given configuration.
func New(cfg Config) *Rasterizer {
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultDPI
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := &Rasterizer{
		dpi:    cfg.DPI,
		cache:  cache.NewLRU[string, []byte](cfg.CacheSize),
		logger: cfg.Logger,
	}
	r.renderPage = r.renderWithPdftoppm
	return r
}

// Render rasterizes the page at pageIndex (0-based) of the given PDF bytes
// to a PNG image. The page selector shown to users is 1-based; callers
// translate before calling.
func (r *Rasterizer) Render(ctx context.Context, pdfBytes []byte, pageIndex int) ([]byte, error) {
	if len(pdfBytes) == 0 {
		return nil, &RenderError{Reason: "empty document"}
	}
	if pageIndex < 0 {
		return nil, &RenderError{Reason: fmt.Sprintf("page index %d out of range", pageIndex)}
	}

	key := renderKey(pdfBytes, pageIndex, r.dpi)
	if img, ok := r.cache.Get(key); ok {
		r.logger.Debug("render cache hit", "page", pageIndex+1)
		return img, nil
	}

	pageCount, err := api.PageCount(bytes.NewReader(pdfBytes), nil)
	if err != nil {
		return nil, &RenderError{Reason: "unreadable document", Err: err}
	}
	if pageIndex >= pageCount {
		return nil, &RenderError{
			Reason: fmt.Sprintf("page index %d out of range (document has %d pages)", pageIndex, pageCount),
		}
	}

	// pdftoppm reads from a file, not stdin.
	tmpDir, err := os.MkdirTemp("", "formscan-render-*")
	if err != nil {
		return nil, &RenderError{Reason: "failed to create temp dir", Err: err}
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0o600); err != nil {
		return nil, &RenderError{Reason: "failed to write temp document", Err: err}
	}

	img, err := r.renderPage(ctx, pdfPath, pageIndex+1)
	if err != nil {
		return nil, &RenderError{Reason: "rendering failed", Err: err}
	}

	r.cache.Add(key, img)
	r.logger.Debug("rendered page", "page", pageIndex+1, "bytes", len(img), "dpi", r.dpi)
	return img, nil
}

// PageCount returns the number of pages in the document.
func (r *Rasterizer) PageCount(pdfBytes []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(pdfBytes), nil)
	if err != nil {
		return 0, &RenderError{Reason: "unreadable document", Err: err}
	}
	return count, nil
}

// CacheStats returns render cache counters.
func (r *Rasterizer) CacheStats() cache.Stats {
	return r.cache.Stats()
}

// CheckBackend reports whether the pdftoppm binary is available.
func (r *Rasterizer) CheckBackend() error {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return &RenderError{Reason: "pdftoppm not found on PATH (install poppler-utils)", Err: err}
	}
	return nil
}

// renderWithPdftoppm renders a single page (1-based) using pdftoppm.
func (r *Rasterizer) renderWithPdftoppm(ctx context.Context, pdfPath string, page int) ([]byte, error) {
	outputPrefix := filepath.Join(filepath.Dir(pdfPath), "page")

	pageStr := fmt.Sprintf("%d", page)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", fmt.Sprintf("%d", r.dpi),
		"-singlefile",
		pdfPath,
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	// pdftoppm with -singlefile creates: <prefix>.png
	srcPath := outputPrefix + ".png"
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}
	return data, nil
}

// renderKey fingerprints (document, page, dpi) for the render cache.
func renderKey(pdfBytes []byte, pageIndex, dpi int) string {
	sum := sha256.Sum256(pdfBytes)
	return fmt.Sprintf("%s:%d:%d", hex.EncodeToString(sum[:]), pageIndex, dpi)
}
