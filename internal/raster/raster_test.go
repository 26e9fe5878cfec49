package raster

import (
	"context"
	"errors"
	"testing"
)

// minimalPDF is a tiny but structurally valid single-page PDF.
var minimalPDF = []byte(`%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [3 0 R] /Count 1 >>
endobj
3 0 obj
<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>
endobj
xref
0 4
0000000000 65535 f
0000000009 00000 n
0000000058 00000 n
0000000115 00000 n
trailer
<< /Size 4 /Root 1 0 R >>
startxref
187
%%EOF
`)

func newTestRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	r := New(Config{CacheSize: 4})
	r.renderPage = func(ctx context.Context, pdfPath string, page int) ([]byte, error) {
		return []byte("png-data"), nil
	}
	return r
}

func TestRender_EmptyDocument(t *testing.T) {
	r := newTestRasterizer(t)

	_, err := r.Render(context.Background(), nil, 0)
	if err == nil {
		t.Fatal("expected error for empty document")
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RenderError, got %T", err)
	}
}

func TestRender_NegativePage(t *testing.T) {
	r := newTestRasterizer(t)

	_, err := r.Render(context.Background(), minimalPDF, -1)
	if err == nil {
		t.Fatal("expected error for negative page index")
	}
}

func TestRender_PageOutOfRange(t *testing.T) {
	r := newTestRasterizer(t)

	_, err := r.Render(context.Background(), minimalPDF, 5)
	if err == nil {
		t.Fatal("expected error for out-of-range page")
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RenderError, got %T", err)
	}
}

func TestRender_CorruptDocument(t *testing.T) {
	r := newTestRasterizer(t)

	_, err := r.Render(context.Background(), []byte("this is not a pdf"), 0)
	if err == nil {
		t.Fatal("expected error for corrupt document")
	}
}

func TestRender_Success(t *testing.T) {
	r := newTestRasterizer(t)

	img, err := r.Render(context.Background(), minimalPDF, 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if string(img) != "png-data" {
		t.Errorf("unexpected image data: %q", img)
	}
}

func TestRender_CachesResult(t *testing.T) {
	r := New(Config{CacheSize: 4})
	calls := 0
	r.renderPage = func(ctx context.Context, pdfPath string, page int) ([]byte, error) {
		calls++
		return []byte("png-data"), nil
	}

	for i := 0; i < 3; i++ {
		if _, err := r.Render(context.Background(), minimalPDF, 0); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 render call, got %d", calls)
	}

	stats := r.CacheStats()
	if stats.Hits != 2 {
		t.Errorf("expected 2 cache hits, got %d", stats.Hits)
	}
}

func TestRender_RenderFailure(t *testing.T) {
	r := New(Config{CacheSize: 4})
	r.renderPage = func(ctx context.Context, pdfPath string, page int) ([]byte, error) {
		return nil, errors.New("backend exploded")
	}

	_, err := r.Render(context.Background(), minimalPDF, 0)
	if err == nil {
		t.Fatal("expected error when backend fails")
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RenderError, got %T", err)
	}
	if rerr.Unwrap() == nil {
		t.Error("expected wrapped backend error")
	}
}

func TestPageCount(t *testing.T) {
	r := newTestRasterizer(t)

	count, err := r.PageCount(minimalPDF)
	if err != nil {
		t.Fatalf("PageCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 page, got %d", count)
	}
}
