package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/formscan/internal/api"
	"github.com/jackzampolin/formscan/internal/cache"
	"github.com/jackzampolin/formscan/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Renderer string `json:"renderer,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	var wait bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			check := func() error {
				var resp HealthResponse
				return client.Get(ctx, "/health", &resp)
			}

			if wait {
				waitCtx, cancel := timeoutContext(ctx, timeout)
				defer cancel()
				if err := retry.Do(check,
					retry.Context(waitCtx),
					retry.Attempts(0), // Until context expires
					retry.Delay(500*time.Millisecond),
				); err != nil {
					return fmt.Errorf("server did not become healthy: %w", err)
				}
			} else if err := check(); err != nil {
				return err
			}

			fmt.Println("Status: ok")
			return nil
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the server is healthy")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up waiting after this long")
	return cmd
}

func timeoutContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Renderer: "ok"}

	rasterizer := svcctx.RasterizerFrom(r.Context())
	if rasterizer == nil {
		resp.Status = "degraded"
		resp.Renderer = "not_initialized"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	if err := rasterizer.CheckBackend(); err != nil {
		resp.Status = "degraded"
		resp.Renderer = "unavailable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (includes the page renderer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:   %s\n", resp.Status)
			fmt.Printf("Renderer: %s\n", resp.Renderer)
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server    string      `json:"server"`
	Providers []string    `json:"providers"`
	Renderer  string      `json:"renderer"`
	Caches    CacheStatus `json:"caches"`
	Sessions  int         `json:"sessions"`
}

// CacheStatus reports render and extraction cache counters.
type CacheStatus struct {
	Render  cache.Stats `json:"render"`
	Extract cache.Stats `json:"extract"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Server:   "running",
		Renderer: "unavailable",
	}

	if registry := svcctx.RegistryFrom(r.Context()); registry != nil {
		resp.Providers = registry.List()
	}
	if rasterizer := svcctx.RasterizerFrom(r.Context()); rasterizer != nil {
		if err := rasterizer.CheckBackend(); err == nil {
			resp.Renderer = "ok"
		}
		resp.Caches.Render = rasterizer.CacheStats()
	}
	if extractor := svcctx.ExtractorFrom(r.Context()); extractor != nil {
		resp.Caches.Extract = extractor.CacheStats()
	}
	if sessions := svcctx.SessionsFrom(r.Context()); sessions != nil {
		resp.Sessions = sessions.Len()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
