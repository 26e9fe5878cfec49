package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formscan/internal/api"
	"github.com/jackzampolin/formscan/internal/svcctx"
)

// GetSessionEndpoint handles GET /api/sessions/{id}.
type GetSessionEndpoint struct{}

var _ api.Endpoint = (*GetSessionEndpoint)(nil)

func (e *GetSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions/{id}", e.handler
}

func (e *GetSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Get a session
//	@Description	Returns the page number, field list, and latest extraction result for a session.
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	session.Session
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/sessions/{id} [get]
func (e *GetSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sessions := svcctx.SessionsFrom(r.Context())
	sess, ok := sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (e *GetSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect extraction sessions",
	}
	sessionsCmd.AddCommand(&cobra.Command{
		Use:   "get <session-id>",
		Short: "Get a session's state and latest result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp map[string]any
			if err := client.Get(cmd.Context(), "/api/sessions/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	})
	return sessionsCmd
}

// SessionImageEndpoint handles GET /api/sessions/{id}/image.
type SessionImageEndpoint struct{}

var _ api.Endpoint = (*SessionImageEndpoint)(nil)

func (e *SessionImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions/{id}/image", e.handler
}

func (e *SessionImageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Get a session's rendered page
//	@Description	Returns the rendered page image for a session as PNG.
//	@Tags		sessions
//	@Produce	png
//	@Param		id	path	string	true	"Session ID"
//	@Success	200	{file}	binary
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/sessions/{id}/image [get]
func (e *SessionImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sessions := svcctx.SessionsFrom(r.Context())
	sess, ok := sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(sess.Image)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(sess.Image)
}

func (e *SessionImageEndpoint) Command(_ func() string) *cobra.Command {
	return nil // Binary output, not useful as a CLI command
}
