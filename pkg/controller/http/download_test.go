package http_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	controller "github.com/tubetap/tubetap/pkg/controller/http"
	"github.com/tubetap/tubetap/pkg/domain/model"
	"github.com/tubetap/tubetap/pkg/domain/types"
)

func TestDownloadEndpoint_DisabledInAPIMode(t *testing.T) {
	server := newTestServer(t, &mockMetadataUC{}, &mockExtractionUC{})

	// Refused regardless of input
	for _, body := range []string{"", "{}", `{"url":"https://youtu.be/dQw4w9WgXcQ","bitrate":192}`, "garbage"} {
		w := postJSON(t, server.Handler, "/api/download", body)

		gt.Value(t, w.Code).Equal(http.StatusNotImplemented)

		var resp struct {
			Error        string   `json:"error"`
			Alternatives []string `json:"alternatives"`
		}
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		gt.String(t, resp.Error).Contains("not available in this deployment")
		gt.Number(t, len(resp.Alternatives)).Greater(0)
	}
}

func TestDownloadEndpoint_UIMode(t *testing.T) {
	audio := []byte("fake mp3 payload")

	var gotReq *model.ExtractionRequest
	extractionUC := &mockExtractionUC{
		extractFunc: func(ctx context.Context, req *model.ExtractionRequest, progress model.ProgressFunc) (*model.ExtractionResult, error) {
			gotReq = req
			return &model.ExtractionResult{Audio: audio, Filename: "Song_Title.mp3"}, nil
		},
	}
	server := newTestServer(t, &mockMetadataUC{}, extractionUC, controller.WithUI(true))

	w := postJSON(t, server.Handler, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ","bitrate":320}`)

	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, w.Header().Get("Content-Type")).Equal("audio/mpeg")
	gt.String(t, w.Header().Get("Content-Disposition")).Contains(`"Song_Title.mp3"`)
	gt.Value(t, w.Body.String()).Equal(string(audio))

	gt.Value(t, gotReq).NotNil()
	gt.Value(t, gotReq.Bitrate).Equal(model.Bitrate320)
}

func TestDownloadEndpoint_DefaultBitrate(t *testing.T) {
	var gotReq *model.ExtractionRequest
	extractionUC := &mockExtractionUC{
		extractFunc: func(ctx context.Context, req *model.ExtractionRequest, progress model.ProgressFunc) (*model.ExtractionResult, error) {
			gotReq = req
			return &model.ExtractionResult{Audio: []byte("x"), Filename: "audio.mp3"}, nil
		},
	}
	server := newTestServer(t, &mockMetadataUC{}, extractionUC, controller.WithUI(true))

	w := postJSON(t, server.Handler, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)

	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, gotReq.Bitrate).Equal(model.DefaultBitrate)
}

func TestDownloadEndpoint_ExtractionFailure(t *testing.T) {
	extractionUC := &mockExtractionUC{
		extractFunc: func(ctx context.Context, req *model.ExtractionRequest, progress model.ProgressFunc) (*model.ExtractionResult, error) {
			return nil, errors.New("ffmpeg exited with status 1")
		},
	}
	server := newTestServer(t, &mockMetadataUC{}, extractionUC, controller.WithUI(true))

	w := postJSON(t, server.Handler, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)

	gt.Value(t, w.Code).Equal(http.StatusInternalServerError)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	// Users get the generic message, not the underlying cause
	gt.Value(t, body["error"]).Equal("Failed to extract audio. Please try again or use a different video.")
}

func TestDownloadEndpoint_ValidationError(t *testing.T) {
	extractionUC := &mockExtractionUC{
		extractFunc: func(ctx context.Context, req *model.ExtractionRequest, progress model.ProgressFunc) (*model.ExtractionResult, error) {
			return nil, goerr.New("Invalid YouTube URL", goerr.T(types.ErrTagValidation))
		},
	}
	server := newTestServer(t, &mockMetadataUC{}, extractionUC, controller.WithUI(true))

	w := postJSON(t, server.Handler, "/api/download", `{"url":"not a url"}`)

	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestExtractStream_Success(t *testing.T) {
	audio := []byte("fake mp3 payload")

	extractionUC := &mockExtractionUC{
		extractFunc: func(ctx context.Context, req *model.ExtractionRequest, progress model.ProgressFunc) (*model.ExtractionResult, error) {
			progress(0.35, model.StageDownloading)
			progress(0.9, model.StageProcessing)
			progress(1.0, model.StageDone)
			return &model.ExtractionResult{Audio: audio, Filename: "Song_Title.mp3"}, nil
		},
	}
	server := newTestServer(t, &mockMetadataUC{}, extractionUC, controller.WithUI(true))

	req := httptest.NewRequest(http.MethodGet, "/api/extract?url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ&bitrate=128", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, w.Header().Get("Content-Type")).Equal("text/event-stream")

	body := w.Body.String()
	gt.String(t, body).Contains("event: progress")
	gt.String(t, body).Contains(`"stage":"downloading"`)
	gt.String(t, body).Contains(`"stage":"done"`)
	gt.String(t, body).Contains("event: complete")
	gt.String(t, body).Contains(`"filename":"Song_Title.mp3"`)
	gt.String(t, body).Contains(base64.StdEncoding.EncodeToString(audio))
	if strings.Contains(body, "event: error") {
		t.Error("success stream should not contain an error event")
	}
}

func TestExtractStream_Failure(t *testing.T) {
	extractionUC := &mockExtractionUC{
		extractFunc: func(ctx context.Context, req *model.ExtractionRequest, progress model.ProgressFunc) (*model.ExtractionResult, error) {
			return nil, errors.New("ffmpeg exited with status 1")
		},
	}
	server := newTestServer(t, &mockMetadataUC{}, extractionUC, controller.WithUI(true))

	req := httptest.NewRequest(http.MethodGet, "/api/extract?url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)

	body := w.Body.String()
	gt.String(t, body).Contains("event: error")
	// The UI gets the generic message, not the underlying cause
	gt.String(t, body).Contains("Failed to extract audio")
	if strings.Contains(body, "ffmpeg") {
		t.Error("underlying cause should not be surfaced to the UI")
	}
}

func TestExtractStream_InvalidRequest(t *testing.T) {
	server := newTestServer(t, &mockMetadataUC{}, &mockExtractionUC{}, controller.WithUI(true))

	tests := []struct {
		name  string
		query string
	}{
		{name: "Missing URL", query: ""},
		{name: "Invalid URL", query: "url=not+a+url"},
		{name: "Bad bitrate", query: "url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ&bitrate=abc"},
		{name: "Unsupported bitrate", query: "url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ&bitrate=160"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/extract?"+tt.query, nil)
			w := httptest.NewRecorder()
			server.Handler.ServeHTTP(w, req)

			gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		})
	}
}

func TestIndexPage_UIModeOnly(t *testing.T) {
	uiServer := newTestServer(t, &mockMetadataUC{}, &mockExtractionUC{}, controller.WithUI(true))
	apiServer := newTestServer(t, &mockMetadataUC{}, &mockExtractionUC{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	uiServer.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Header().Get("Content-Type")).Contains("text/html")
	gt.String(t, w.Body.String()).Contains("Extract")

	w = httptest.NewRecorder()
	apiServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	gt.Value(t, w.Code).Equal(http.StatusNotFound)
}
