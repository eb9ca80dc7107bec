package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cdash/internal/chart"
	"cdash/internal/complaint"
	cdasherrors "cdash/internal/errors"
	"cdash/internal/export"
	"cdash/internal/metrics"
	"cdash/internal/report"
	"cdash/internal/session"
	"cdash/internal/workbook"
)

// uploadResponse seeds the dashboard filters after a successful upload.
type uploadResponse struct {
	SessionID  string   `json:"session_id"`
	Rows       int      `json:"rows"`
	Dropped    int      `json:"dropped"`
	Categories []string `json:"categories"`
	MinDate    string   `json:"min_date"`
	MaxDate    string   `json:"max_date"`
}

// reportResponse is the full payload for one filter state.
type reportResponse struct {
	Summary report.Summary        `json:"summary"`
	Stats   []report.CategoryStat `json:"stats"`
	Detail  []complaint.Record    `json:"detail"`
}

// Upload accepts a multipart workbook upload, parses the complaint sheet and
// caches the result as a new session.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("workbook")
	if err != nil {
		metrics.UploadFailuresTotal.Inc()
		writeError(w, cdasherrors.NewUploadError("missing workbook file field", err))
		return
	}
	defer file.Close()

	records, stats, err := workbook.Load(file, s.cfg.SheetName)
	if err != nil {
		metrics.UploadFailuresTotal.Inc()
		s.monitor.UpdateUploadStatus(fmt.Sprintf("error: %v", err))
		writeError(w, err)
		return
	}

	minDate, maxDate := report.DateBounds(records)
	categories := report.CategoryNames(records)
	sess := s.store.Put(records, stats, categories, minDate, maxDate)

	metrics.UploadsTotal.Inc()
	metrics.RowsParsedTotal.Add(float64(stats.Rows))
	metrics.RowsDroppedTotal.Add(float64(stats.Dropped))
	metrics.ActiveSessions.Set(float64(s.store.Len()))
	s.monitor.UpdateUploadStatus("success")

	log.Printf("📬 Parsed %q: %d rows, %d dropped (session %s)",
		header.Filename, stats.Rows, stats.Dropped, sess.ID)

	writeJSON(w, http.StatusOK, uploadResponse{
		SessionID:  sess.ID,
		Rows:       stats.Rows,
		Dropped:    stats.Dropped,
		Categories: sess.Categories,
		MinDate:    formatDate(minDate),
		MaxDate:    formatDate(maxDate),
	})
}

// Report recomputes the aggregation for the requested filter state.
func (s *Server) Report(w http.ResponseWriter, r *http.Request) {
	sess, req, err := s.parseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rep, filtered := report.Run(sess.Records, req)
	metrics.ReportRequestsTotal.Inc()

	writeJSON(w, http.StatusOK, reportResponse{
		Summary: rep.Summary,
		Stats:   rep.Stats,
		Detail:  filtered,
	})
}

// Export streams the filtered report as a two-sheet xlsx download.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	sess, req, err := s.parseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rep, filtered := report.Run(sess.Records, req)
	data, err := export.Build(rep, filtered)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.ExportsTotal.Inc()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))

	if _, err := w.Write(data); err != nil {
		log.Printf("⚠️  Failed to send export: %v", err)
	}
}

// BarChart renders the percentage-by-category bar chart for the filter state.
func (s *Server) BarChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "bar", chart.BarChart)
}

// PieChart renders the category distribution pie chart for the filter state.
func (s *Server) PieChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "pie", chart.PieChart)
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, kind string,
	render func(report.Report, int, int) ([]byte, error)) {

	sess, req, err := s.parseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rep, _ := report.Run(sess.Records, req)
	data, err := render(rep, s.cfg.ChartWidth, s.cfg.ChartHeight)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.ChartRendersTotal.WithLabelValues(kind).Inc()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(data); err != nil {
		log.Printf("⚠️  Failed to send %s chart: %v", kind, err)
	}
}

// parseFilter resolves the session and filter parameters shared by the
// report, export and chart endpoints.
//
// Query parameters:
//   - session: required upload session id
//   - from, to: optional "2006-01-02" dates; default to the upload's bounds
//   - categories: optional comma-separated list; absent means all
func (s *Server) parseFilter(r *http.Request) (*session.Session, report.Request, error) {
	var req report.Request

	sess, err := s.store.Get(r.URL.Query().Get("session"))
	if err != nil {
		return nil, req, err
	}

	req.From = sess.MinDate
	req.To = sess.MaxDate

	if v := r.URL.Query().Get("from"); v != "" {
		req.From, err = time.Parse(complaint.DateLayout, v)
		if err != nil {
			return nil, req, cdasherrors.NewInvalidFilterError(fmt.Sprintf("bad from date %q", v), err)
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		req.To, err = time.Parse(complaint.DateLayout, v)
		if err != nil {
			return nil, req, cdasherrors.NewInvalidFilterError(fmt.Sprintf("bad to date %q", v), err)
		}
	}

	if v := r.URL.Query().Get("categories"); v != "" {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				req.Categories = append(req.Categories, c)
			}
		}
	}

	return sess, req, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(complaint.DateLayout)
}
