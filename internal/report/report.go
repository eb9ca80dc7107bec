// Package report computes the category breakdown over a filtered set of
// complaint records.
//
// Filtering selects records by inclusive date range and category membership.
// Aggregation produces per-category counts, percentages of the filtered
// total and a reporter breakdown sorted by report count. Every request
// recomputes over the in-memory records, matching the one-way
// upload → filter → aggregate flow of the dashboard.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"cdash/internal/complaint"
)

// Request describes the active filter: an inclusive civil date range plus a
// set of selected categories. An empty category set selects all categories.
type Request struct {
	From       time.Time
	To         time.Time
	Categories []string
}

// ReporterCount is one reporter's tally within a category.
type ReporterCount struct {
	Reporter string  `json:"reporter"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"` // share of the category, one decimal
}

// CategoryStat is the aggregate for a single category.
type CategoryStat struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"` // share of the filtered total, one decimal
	Reporters  []ReporterCount `json:"reporters"`
	// TopReporters is the display string, e.g. "Jane Doe (5), Bob (2)"
	TopReporters string `json:"top_reporters"`
}

// Summary is the headline block shown above the category table.
type Summary struct {
	Total      int    `json:"total"`
	Categories int    `json:"categories"`
	Reporters  int    `json:"reporters"`
	From       string `json:"from"`
	To         string `json:"to"`
}

// Report is the full aggregation result for a filtered set.
type Report struct {
	Summary Summary        `json:"summary"`
	Stats   []CategoryStat `json:"stats"`
}

// Filter returns the subset of records inside the inclusive [From, To] date
// range whose category is in the request's category set. An empty result is
// valid, not an error.
func Filter(records []complaint.Record, req Request) []complaint.Record {
	selected := make(map[string]bool, len(req.Categories))
	for _, c := range req.Categories {
		selected[c] = true
	}

	from := truncateToDay(req.From)
	to := truncateToDay(req.To)

	var out []complaint.Record
	for _, r := range records {
		day := truncateToDay(r.ReportTime)
		if day.Before(from) || day.After(to) {
			continue
		}
		if len(selected) > 0 && !selected[r.Category] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Aggregate computes the category breakdown over an already-filtered set.
//
// Percentages are computed against the filtered total, not the unfiltered
// total. Categories are sorted by count descending (name ascending on ties);
// reporters within a category likewise.
func Aggregate(filtered []complaint.Record, req Request) Report {
	total := len(filtered)

	counts := make(map[string]int)
	reporters := make(map[string]map[string]int)
	distinctReporters := make(map[string]bool)

	for _, r := range filtered {
		counts[r.Category]++
		if reporters[r.Category] == nil {
			reporters[r.Category] = make(map[string]int)
		}
		reporters[r.Category][r.Reporter]++
		distinctReporters[r.Reporter] = true
	}

	stats := make([]CategoryStat, 0, len(counts))
	for category, count := range counts {
		stat := CategoryStat{
			Category:   category,
			Count:      count,
			Percentage: round1(float64(count) / float64(total) * 100),
			Reporters:  reporterCounts(reporters[category], count),
		}
		stat.TopReporters = formatReporters(stat.Reporters)
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})

	return Report{
		Summary: Summary{
			Total:      total,
			Categories: len(counts),
			Reporters:  len(distinctReporters),
			From:       req.From.Format(complaint.DateLayout),
			To:         req.To.Format(complaint.DateLayout),
		},
		Stats: stats,
	}
}

// Run filters and aggregates in one step.
func Run(records []complaint.Record, req Request) (Report, []complaint.Record) {
	filtered := Filter(records, req)
	return Aggregate(filtered, req), filtered
}

// DateBounds returns the earliest and latest civil dates present in records.
// Used to seed the filter inputs after an upload.
func DateBounds(records []complaint.Record) (min, max time.Time) {
	for _, r := range records {
		day := truncateToDay(r.ReportTime)
		if min.IsZero() || day.Before(min) {
			min = day
		}
		if max.IsZero() || day.After(max) {
			max = day
		}
	}
	return min, max
}

// CategoryNames returns the distinct categories in records, sorted.
func CategoryNames(records []complaint.Record) []string {
	set := make(map[string]bool)
	for _, r := range records {
		set[r.Category] = true
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// reporterCounts converts a reporter tally map into a sorted slice with
// within-category percentages.
func reporterCounts(tally map[string]int, categoryTotal int) []ReporterCount {
	out := make([]ReporterCount, 0, len(tally))
	for reporter, count := range tally {
		out = append(out, ReporterCount{
			Reporter: reporter,
			Count:    count,
			Percent:  round1(float64(count) / float64(categoryTotal) * 100),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reporter < out[j].Reporter
	})
	return out
}

// formatReporters renders "Jane Doe (5), Bob (2)" for the summary table.
func formatReporters(counts []ReporterCount) string {
	parts := make([]string, len(counts))
	for i, rc := range counts {
		parts[i] = fmt.Sprintf("%s (%d)", rc.Reporter, rc.Count)
	}
	return strings.Join(parts, ", ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
