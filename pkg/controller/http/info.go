package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/tubetap/tubetap/pkg/domain/interfaces"
	"github.com/tubetap/tubetap/pkg/domain/model"
	"github.com/tubetap/tubetap/pkg/domain/types"
	"github.com/tubetap/tubetap/pkg/utils/format"
)

// InfoHandler handles metadata lookup requests
type InfoHandler struct {
	metadataUC interfaces.MetadataUseCase
}

// NewInfoHandler creates a new InfoHandler
func NewInfoHandler(metadataUC interfaces.MetadataUseCase) *InfoHandler {
	return &InfoHandler{
		metadataUC: metadataUC,
	}
}

type infoRequest struct {
	URL string `json:"url"`
}

type infoDisplay struct {
	Duration string `json:"duration"`
	Views    string `json:"views"`
}

type infoResponse struct {
	Success bool                 `json:"success"`
	Data    *model.VideoMetadata `json:"data"`
	Display infoDisplay          `json:"display"`
}

// Handle processes metadata lookup requests
func (h *InfoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req infoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		writeError(w, goerr.New("URL is required", goerr.T(types.ErrTagValidation)), http.StatusBadRequest)
		return
	}
	if !model.IsValidVideoURL(req.URL) {
		writeError(w, goerr.New("Invalid YouTube URL", goerr.T(types.ErrTagValidation)), http.StatusBadRequest)
		return
	}

	meta, err := h.metadataUC.Fetch(ctx, req.URL)
	if err != nil {
		logger.Error("Failed to fetch video metadata", "url", req.URL, "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, infoResponse{
		Success: true,
		Data:    meta,
		Display: infoDisplay{
			Duration: format.Duration(meta.Duration),
			Views:    format.Views(meta.ViewCount),
		},
	})
}
