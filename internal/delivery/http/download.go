package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/bekawave/internal/report"
)

// Exporter renders the sales report
type Exporter interface {
	Export(ctx context.Context, format string) (report.File, error)
}

// DownloadHandler serves the sales report as a file attachment
type DownloadHandler struct {
	exporter Exporter
	metrics  *Metrics
}

// NewDownloadHandler creates a download handler
func NewDownloadHandler(exporter Exporter, metrics *Metrics) *DownloadHandler {
	return &DownloadHandler{exporter: exporter, metrics: metrics}
}

func (h *DownloadHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/download", h.metrics.Wrap("/download", h.Download)).Methods(http.MethodGet)
}

// Download handles GET /download?format=csv|xlsx
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	file, err := h.exporter.Export(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		respondFailure(w, r, err, "Report data not found", "Duplicate report", "Internal server error")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+file.Name)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Body)
}
