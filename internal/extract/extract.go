// Package extract sends a rendered page image and a field list to a
// vision model and parses the reply into a field/value mapping.
package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackzampolin/formscan/internal/cache"
	"github.com/jackzampolin/formscan/internal/providers"
)

const (
	// DefaultMaxTokens is the reply token budget when none is configured.
	DefaultMaxTokens = 4096

	// DefaultCacheSize bounds the extraction result cache.
	DefaultCacheSize = 64
)

// FieldValue is one extracted field, in request order.
type FieldValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Result is a completed extraction.
type Result struct {
	// Fields holds the extracted values in the order they were requested.
	Fields []FieldValue `json:"fields"`
	// Values is the full mapping from the model reply, including any
	// keys that were not requested.
	Values map[string]string `json:"values"`

	Provider  string `json:"provider"`
	Model     string `json:"model"`
	RequestID string `json:"request_id,omitempty"`
	// Cached reports whether this result was served from the cache
	// rather than a fresh model call. Model replies are not
	// deterministic, so a cached result may differ from what a new
	// call would return.
	Cached bool `json:"cached"`

	ExecutionTime time.Duration `json:"-"`
}

// Request describes one extraction.
type Request struct {
	// Image is the rendered page, PNG bytes.
	Image []byte
	// Fields are the field names to extract, in display order.
	Fields []string
	// Provider overrides the configured default when set.
	Provider string
	// RequestID correlates logs across the call.
	RequestID string
}

// Config holds extraction settings.
type Config struct {
	// DefaultProvider is used when a request names none.
	DefaultProvider string
	MaxTokens       int
	Temperature     float64
	// StrictKeys rejects replies whose keys do not exactly match the
	// requested field set.
	StrictKeys bool
	// CacheEnabled memoizes results by (image, provider, model, fields).
	CacheEnabled bool
	CacheSize    int
	Logger       *slog.Logger
}

// Client runs extractions against a provider registry.
type Client struct {
	registry    *providers.Registry
	defaultProv string
	maxTokens   int
	temperature float64
	strictKeys  bool
	cacheOn     bool
	cache       *cache.LRU[string, *Result]
	logger      *slog.Logger
}

// NewClient creates an extraction client.
func NewClient(registry *providers.Registry, cfg Config) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		registry:    registry,
		defaultProv: cfg.DefaultProvider,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		strictKeys:  cfg.StrictKeys,
		cacheOn:     cfg.CacheEnabled,
		cache:       cache.NewLRU[string, *Result](cfg.CacheSize),
		logger:      cfg.Logger,
	}
}

// Extract sends the image and field list to the model and parses the
// reply. A failed call is surfaced to the caller, never retried.
func (c *Client) Extract(ctx context.Context, req *Request) (*Result, error) {
	if len(req.Image) == 0 {
		return nil, &Error{Kind: ErrKindValidate, Reason: "no page image"}
	}
	if len(req.Fields) == 0 {
		return nil, &Error{Kind: ErrKindValidate, Reason: "no fields requested"}
	}

	providerName := req.Provider
	if providerName == "" {
		providerName = c.defaultProv
	}
	client, err := c.registry.Get(providerName)
	if err != nil {
		return nil, &Error{
			Kind:   ErrKindValidate,
			Reason: fmt.Sprintf("provider %q is not configured", providerName),
			Err:    err,
		}
	}

	key := resultKey(req.Image, providerName, client.Model(), req.Fields)
	if c.cacheOn {
		if cached, ok := c.cache.Get(key); ok {
			c.logger.Debug("extraction cache hit", "provider", providerName, "request_id", req.RequestID)
			out := *cached
			out.Cached = true
			return &out, nil
		}
	}

	prompt, err := BuildPrompt(req.Fields)
	if err != nil {
		return nil, &Error{Kind: ErrKindValidate, Reason: "prompt construction failed", Err: err}
	}

	start := time.Now()
	resp, err := client.Complete(ctx, &providers.VisionRequest{
		Prompt:      prompt,
		Image:       req.Image,
		ImageMIME:   "image/png",
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return nil, &Error{Kind: ErrKindTransport, Reason: "model call failed", Err: err}
	}

	fields, values, err := parseResponse(resp.Text, req.Fields)
	if err != nil {
		c.logger.Warn("unparseable model reply",
			"provider", providerName,
			"request_id", req.RequestID,
			"reply_bytes", len(resp.Text))
		return nil, err
	}

	if c.strictKeys {
		if err := validateKeys(req.Fields, values); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Fields:        fields,
		Values:        values,
		Provider:      resp.Provider,
		Model:         resp.ModelUsed,
		RequestID:     req.RequestID,
		ExecutionTime: time.Since(start),
	}

	if c.cacheOn {
		c.cache.Add(key, result)
	}

	c.logger.Info("extraction complete",
		"provider", resp.Provider,
		"model", resp.ModelUsed,
		"fields", len(req.Fields),
		"duration", result.ExecutionTime,
		"request_id", req.RequestID)

	return result, nil
}

// CacheStats returns extraction cache counters.
func (c *Client) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// resultKey fingerprints (image, provider, model, fields) for the
// result cache. Field order matters: a reordered list is a different
// request. The model is part of the key so a hot-reloaded provider
// running a new model under the same name does not serve stale results.
func resultKey(image []byte, provider, model string, fields []string) string {
	h := sha256.New()
	h.Write(image)
	h.Write([]byte{0})
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(fields, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}
