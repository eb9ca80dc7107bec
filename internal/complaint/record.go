// Package complaint provides types and structures for complaint ticket data.
package complaint

import (
	"regexp"
	"strings"
	"time"
)

// Sentinel values used when source cells are missing or unmatchable.
const (
	// UndefinedCategory replaces a missing or blank "Main Category Name" cell.
	UndefinedCategory = "Undefined"

	// UnknownReporter is used when the ticket subject names no reporter.
	UnknownReporter = "Unknown"
)

// reporterPattern matches the trailing "reported by <name>" clause of a
// ticket subject. The match is case-sensitive, same as the source data.
var reporterPattern = regexp.MustCompile(`reported by (.+)$`)

// Record represents a single complaint ticket parsed from the upload.
//
// Date, Day and Hour are derived from ReportTime at load time. Every
// retained record has a valid ReportTime; rows that fail to parse are
// dropped by the loader.
type Record struct {
	Category   string    `json:"category"`
	Product    string    `json:"product"`
	ReportTime time.Time `json:"report_time"`
	Date       string    `json:"date"` // "2006-01-02"
	Day        string    `json:"day"`  // weekday name, e.g. "Monday"
	Hour       int       `json:"hour"` // 0-23
	Facility   string    `json:"facility"`
	Reporter   string    `json:"reporter"`
	Subject    string    `json:"subject"`
	Picker     string    `json:"picker"`
}

// DateLayout is the civil date format used throughout the dashboard.
const DateLayout = "2006-01-02"

// Derive fills the Date, Day and Hour fields from ReportTime.
func (r *Record) Derive() {
	r.Date = r.ReportTime.Format(DateLayout)
	r.Day = r.ReportTime.Weekday().String()
	r.Hour = r.ReportTime.Hour()
}

// ExtractReporter pulls the reporter name out of a ticket subject.
//
// A subject like "Issue X reported by Jane Doe" yields "Jane Doe" with
// surrounding whitespace trimmed. A subject with no match, or an empty
// subject, yields UnknownReporter.
func ExtractReporter(subject string) string {
	if strings.TrimSpace(subject) == "" {
		return UnknownReporter
	}
	m := reporterPattern.FindStringSubmatch(subject)
	if m == nil {
		return UnknownReporter
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return UnknownReporter
	}
	return name
}

// NormalizeCategory coerces missing or blank category cells to the
// UndefinedCategory sentinel so aggregation never sees an empty key.
func NormalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return UndefinedCategory
	}
	return trimmed
}
