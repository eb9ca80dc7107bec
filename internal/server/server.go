// Package server wires the dashboard's HTTP surface: the embedded page,
// the upload/report/export API and the chart image endpoints.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"cdash/internal/config"
	cdasherrors "cdash/internal/errors"
	"cdash/internal/health"
	"cdash/internal/metrics"
	"cdash/internal/session"
)

type Server struct {
	cfg     *config.Config
	store   *session.Store
	monitor *health.Monitor
}

func NewServer(cfg *config.Config, store *session.Store, monitor *health.Monitor) *Server {
	return &Server{cfg: cfg, store: store, monitor: monitor}
}

func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.Dashboard)
	mux.HandleFunc("POST /api/upload", s.Upload)
	mux.HandleFunc("GET /api/report", s.Report)
	mux.HandleFunc("GET /api/export", s.Export)
	mux.HandleFunc("GET /charts/bar.png", s.BarChart)
	mux.HandleFunc("GET /charts/pie.png", s.PieChart)
	mux.HandleFunc("GET /health", s.monitor.Handler())
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps domain errors onto HTTP status codes and logs the failure.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case cdasherrors.IsSessionNotFound(err):
		status = http.StatusNotFound
	case cdasherrors.IsSheetNotFound(err), cdasherrors.IsMissingColumn(err):
		status = http.StatusUnprocessableEntity
	case cdasherrors.IsInvalidFilter(err):
		status = http.StatusBadRequest
	default:
		if _, ok := err.(*cdasherrors.UploadError); ok {
			status = http.StatusBadRequest
		}
	}

	if status == http.StatusInternalServerError {
		log.Printf("⚠️  Internal error: %v", err)
	}
	http.Error(w, err.Error(), status)
}
