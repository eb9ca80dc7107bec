// Package health provides the health check endpoint for the dashboard.
//
// This package implements:
//   - HTTP health check handler
//   - Uptime monitoring
//   - Last-upload status reporting
package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status represents the application health status.
//
// This is returned by the /health endpoint for monitoring tools.
type Status struct {
	Status           string `json:"status"`
	Uptime           string `json:"uptime"`
	LastUploadTime   string `json:"last_upload_time"`
	LastUploadStatus string `json:"last_upload_status"`
}

// Monitor tracks application health metrics.
//
// Thread-safety:
//   - All fields are protected by RWMutex
//   - Safe for concurrent updates from multiple goroutines
type Monitor struct {
	startTime        time.Time
	lastUploadTime   time.Time
	lastUploadStatus string
	mu               sync.RWMutex
}

// NewMonitor creates a new health monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		startTime:        time.Now(),
		lastUploadStatus: "no uploads yet",
	}
}

// UpdateUploadStatus records the outcome of an upload attempt.
//
// This should be called:
//   - After successful parse: UpdateUploadStatus("success")
//   - After failed parse: UpdateUploadStatus("error: details")
func (m *Monitor) UpdateUploadStatus(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUploadTime = time.Now()
	m.lastUploadStatus = status
}

// GetStatus returns the current health status.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uptime := time.Since(m.startTime)

	lastUpload := ""
	if !m.lastUploadTime.IsZero() {
		lastUpload = m.lastUploadTime.Format("2006-01-02 15:04:05")
	}

	return Status{
		Status:           "healthy",
		Uptime:           uptime.String(),
		LastUploadTime:   lastUpload,
		LastUploadStatus: m.lastUploadStatus,
	}
}

// Handler returns the /health endpoint handler.
//
// Example response:
//
//	{
//	  "status": "healthy",
//	  "uptime": "1h2m3s",
//	  "last_upload_time": "2026-01-15 10:30:00",
//	  "last_upload_status": "success"
//	}
func (m *Monitor) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := m.GetStatus()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	}
}
