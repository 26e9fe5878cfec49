package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/formscan/internal/api"
	"github.com/jackzampolin/formscan/internal/extract"
	"github.com/jackzampolin/formscan/internal/raster"
	"github.com/jackzampolin/formscan/internal/svcctx"
)

// maxUploadBytes caps uploaded document size (50MB).
const maxUploadBytes = 50 << 20

// ExtractResponse is the result of one extraction.
type ExtractResponse struct {
	SessionID string               `json:"session_id"`
	Page      int                  `json:"page"`
	Fields    []extract.FieldValue `json:"fields"`
	Values    map[string]string    `json:"values"`
	Provider  string               `json:"provider"`
	Model     string               `json:"model"`
	Cached    bool                 `json:"cached"`
}

// ExtractEndpoint handles POST /api/extract with a multipart document upload.
type ExtractEndpoint struct{}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Extract fields from a document page
//	@Description	Upload a PDF, render one page, and extract the named fields with a vision model. Pass session_id instead of a file to re-extract from a previous upload.
//	@Tags			extract
//	@Accept			mpfd
//	@Produce		json
//	@Param			file		formData	file	false	"PDF document"
//	@Param			page		formData	int		false	"Page number, 1-based (default 1)"
//	@Param			fields		formData	string	true	"Field names, one per line"
//	@Param			provider	formData	string	false	"Provider name (default from config)"
//	@Param			session_id	formData	string	false	"Re-use a previous upload"
//	@Success		200	{object}	ExtractResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/api/extract [post]
func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	fields := extract.ParseFields(r.FormValue("fields"))
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "no fields requested: provide one field name per line")
		return
	}

	page := 1
	if v := r.FormValue("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid page number %q", v))
			return
		}
		page = n
	}

	sessions := svcctx.SessionsFrom(r.Context())
	rasterizer := svcctx.RasterizerFrom(r.Context())
	extractor := svcctx.ExtractorFrom(r.Context())
	logger := svcctx.LoggerFrom(r.Context())

	requestID := uuid.New().String()

	// Either a fresh upload or a prior session's page image.
	var image []byte
	sessionID := r.FormValue("session_id")

	files := r.MultipartForm.File["file"]
	switch {
	case len(files) > 0:
		fh := files[0]
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s is not a PDF", fh.Filename))
			return
		}

		src, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to open upload: %v", err))
			return
		}
		pdfBytes, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read upload: %v", err))
			return
		}

		image, err = rasterizer.Render(r.Context(), pdfBytes, page-1)
		if err != nil {
			var rerr *raster.RenderError
			if errors.As(err, &rerr) {
				writeError(w, http.StatusUnprocessableEntity, rerr.Reason)
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		sess := sessions.Create(page, image, fields)
		sessionID = sess.ID

	case sessionID != "":
		sess, ok := sessions.Get(sessionID)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("session %s not found or expired", sessionID))
			return
		}
		image = sess.Image
		page = sess.PageNumber

	default:
		writeError(w, http.StatusBadRequest, "no document uploaded: provide a file or a session_id")
		return
	}

	result, err := extractor.Extract(r.Context(), &extract.Request{
		Image:     image,
		Fields:    fields,
		Provider:  r.FormValue("provider"),
		RequestID: requestID,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("extraction failed", "error", err, "request_id", requestID)
		}
		var eerr *extract.Error
		if errors.As(err, &eerr) && eerr.Kind == extract.ErrKindValidate {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	sessions.SetResult(sessionID, fields, result)

	writeJSON(w, http.StatusOK, ExtractResponse{
		SessionID: sessionID,
		Page:      page,
		Fields:    result.Fields,
		Values:    result.Values,
		Provider:  result.Provider,
		Model:     result.Model,
		Cached:    result.Cached,
	})
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		fields   []string
		page     int
		provider string
	)

	cmd := &cobra.Command{
		Use:   "extract <pdf-file>",
		Short: "Extract fields from a document via the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			form := map[string]string{
				"fields": strings.Join(fields, "\n"),
				"page":   strconv.Itoa(page),
			}
			if provider != "" {
				form["provider"] = provider
			}

			client := api.NewClient(getServerURL())
			var resp ExtractResponse
			err = client.PostMultipart(cmd.Context(), "/api/extract",
				[]api.MultipartFile{{Field: "file", Filename: args[0], Data: data}},
				form, &resp)
			if err != nil {
				return err
			}
			return api.Output(resp)
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field to extract (repeatable)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number (1-based)")
	cmd.Flags().StringVar(&provider, "provider", "", "Provider name (default from server config)")
	return cmd
}
