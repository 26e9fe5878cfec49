// Package providers contains clients for hosted multimodal models.
// Each client sends a single image plus an instruction prompt and returns
// the model's raw text reply; interpretation of that reply belongs to the
// extract package.
package providers

import (
	"context"
	"time"
)

// VisionClient is the interface for a multimodal model backend.
type VisionClient interface {
	// Complete sends one prompt + image request and returns the text reply.
	// No retries are performed: a failed call is surfaced to the caller.
	Complete(ctx context.Context, req *VisionRequest) (*VisionResult, error)

	// Name returns the client identifier (e.g. "gemini").
	Name() string

	// Model returns the model the client calls when a request names none.
	Model() string
}

// VisionRequest is a single prompt-plus-image request.
type VisionRequest struct {
	// Prompt is the full instruction text.
	Prompt string

	// Image is the raw image payload.
	Image []byte

	// ImageMIME is the image content type (default: image/png).
	ImageMIME string

	// Model overrides the client's default model when non-empty.
	Model string

	// Generation parameters
	MaxTokens   int
	Temperature float64

	// RequestID is attached to logs and the result for tracing.
	RequestID string
}

// VisionResult is the response from a model call.
type VisionResult struct {
	// Text is the raw model reply, unparsed.
	Text string `json:"text"`

	// Token counts (zero when the backend does not report usage)
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID     string        `json:"request_id"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// mimeOrDefault returns the request's image MIME type, defaulting to PNG.
func mimeOrDefault(req *VisionRequest) string {
	if req.ImageMIME != "" {
		return req.ImageMIME
	}
	return "image/png"
}
