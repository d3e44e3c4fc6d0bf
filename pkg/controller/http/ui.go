package http

import (
	_ "embed"
	"net/http"

	"github.com/m-mizutani/ctxlog"
)

//go:embed static/index.html
var indexHTML []byte

// handleIndex serves the single-page UI
func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexHTML); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write index page", "error", err)
	}
}
