// Package metrics provides Prometheus observability metrics for the
// complaints dashboard. It covers ingest volume, report activity and the
// session cache.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// UploadsTotal counts accepted workbook uploads.
var UploadsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "cdash",
	Name:      "uploads_total",
	Help:      "Number of workbook uploads successfully parsed",
})

// UploadFailuresTotal counts rejected uploads (wrong sheet, missing columns,
// unreadable files).
var UploadFailuresTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "cdash",
	Name:      "upload_failures_total",
	Help:      "Number of uploads rejected during parsing",
})

// RowsParsedTotal counts complaint rows retained across all uploads.
var RowsParsedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "cdash",
	Name:      "rows_parsed_total",
	Help:      "Number of complaint rows retained from uploaded workbooks",
})

// RowsDroppedTotal counts rows dropped for unparsable report timestamps.
// A high ratio against rows_parsed_total points at a source format change.
var RowsDroppedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "cdash",
	Name:      "rows_dropped_total",
	Help:      "Number of uploaded rows dropped due to unparsable report timestamps",
})

// ReportRequestsTotal counts filter/aggregate requests.
var ReportRequestsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "cdash",
	Name:      "report_requests_total",
	Help:      "Number of report computations served",
})

// ExportsTotal counts generated Excel exports.
var ExportsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "cdash",
	Name:      "exports_total",
	Help:      "Number of Excel exports generated",
})

// ChartRendersTotal counts rendered chart images by kind.
var ChartRendersTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cdash",
	Name:      "chart_renders_total",
	Help:      "Number of chart images rendered",
}, []string{"kind"})

// ActiveSessions tracks the number of cached upload sessions.
var ActiveSessions = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "cdash",
	Name:      "active_sessions",
	Help:      "Number of upload sessions currently cached in memory",
})

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
