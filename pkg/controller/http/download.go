package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/tubetap/tubetap/pkg/domain/interfaces"
	"github.com/tubetap/tubetap/pkg/domain/model"
	"github.com/tubetap/tubetap/pkg/domain/types"
)

// extractionFailedMessage is what end users see when the pipeline fails;
// the underlying cause goes to the logs only.
const extractionFailedMessage = "Failed to extract audio. Please try again or use a different video."

// handleDownloadDisabled unconditionally refuses extraction. Served in API
// mode, where subprocess execution time and scratch storage cannot be
// relied on. Accepts and ignores any request body.
func handleDownloadDisabled(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotImplemented, map[string]any{
		"error": "Audio extraction is not available in this deployment due to " +
			"execution-time and filesystem limits. Run the interactive UI mode " +
			"on a host with ffmpeg available for full functionality.",
		"alternatives": []string{
			"Run `tubetap ui` on a host with ffmpeg installed",
			"Self-host the UI mode with Docker on a VPS",
			"Use the metadata API here and extract elsewhere",
		},
	})
}

// DownloadHandler handles audio extraction requests in UI mode
type DownloadHandler struct {
	extractionUC interfaces.ExtractionUseCase
}

// NewDownloadHandler creates a new DownloadHandler
func NewDownloadHandler(extractionUC interfaces.ExtractionUseCase) *DownloadHandler {
	return &DownloadHandler{
		extractionUC: extractionUC,
	}
}

type downloadRequest struct {
	URL     string `json:"url"`
	Bitrate int    `json:"bitrate"`
}

// Handle runs the extraction synchronously and responds with the MP3 bytes
func (h *DownloadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req downloadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	bitrate, err := model.ParseBitrate(req.Bitrate)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	extReq := &model.ExtractionRequest{URL: req.URL, Bitrate: bitrate}
	result, err := h.extractionUC.Extract(ctx, extReq, nil)
	if err != nil {
		if goerr.HasTag(err, types.ErrTagValidation) {
			writeError(w, err, http.StatusBadRequest)
			return
		}
		// The cause stays in the log; users get the generic message
		logger.Error("Audio extraction failed", "url", req.URL, "error", err)
		writeError(w, goerr.New(extractionFailedMessage), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Audio)))
	if _, err := w.Write(result.Audio); err != nil {
		logger.Error("Failed to write audio response", "error", err)
	}
}

// HandleStream runs the extraction while streaming progress checkpoints as
// server-sent events, finishing with the audio itself. One request carries
// the whole operation; nothing survives it.
func (h *DownloadHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, goerr.New("streaming is not supported"), http.StatusInternalServerError)
		return
	}

	rawURL := r.URL.Query().Get("url")
	kbps := 0
	if v := r.URL.Query().Get("bitrate"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, goerr.New("bitrate must be a number", goerr.T(types.ErrTagValidation)), http.StatusBadRequest)
			return
		}
		kbps = n
	}

	bitrate, err := model.ParseBitrate(kbps)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	extReq := &model.ExtractionRequest{URL: rawURL, Bitrate: bitrate}
	if err := extReq.Validate(); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(event string, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to encode event payload", "event", event, "error", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	result, err := h.extractionUC.Extract(ctx, extReq, func(fraction float64, stage model.ExtractionStage) {
		send("progress", map[string]any{
			"fraction": fraction,
			"stage":    string(stage),
		})
	})
	if err != nil {
		logger.Error("Audio extraction failed", "url", rawURL, "error", err)
		send("error", map[string]string{"error": extractionFailedMessage})
		return
	}

	send("complete", map[string]any{
		"filename": result.Filename,
		"size":     len(result.Audio),
		"audio":    base64.StdEncoding.EncodeToString(result.Audio),
	})
}
