// Package workbook handles reading complaint records out of uploaded Excel
// workbooks.
//
// The ticketing system exports a fixed sheet ("Internal Requests" by default)
// with a header row naming each column. The loader maps those source columns
// onto complaint.Record fields, derives the calendar fields, extracts the
// reporter from the ticket subject and silently drops rows whose report
// timestamp cannot be parsed.
package workbook

import (
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cdash/internal/complaint"
	cdasherrors "cdash/internal/errors"
)

// Source column headers as exported by the ticketing system.
const (
	colCategory = "Main Category Name"
	colProduct  = "Product Name"
	colReported = "Ticket Created At eet"
	colFacility = "FP Name"
	colPicker   = "Picker Name"
	colSubject  = "Ticket Subject"
)

// requiredColumns must all be present in the header row of the sheet.
var requiredColumns = []string{
	colCategory, colProduct, colReported, colFacility, colPicker, colSubject,
}

// timeLayouts are the string forms Excel exports commonly yield for the
// report timestamp. Tried in order; the serial-number form is handled
// separately.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"01-02-06 15:04",
	"2006-01-02",
	"1/2/2006",
}

// excelEpoch is day zero of the Excel 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// LoadStats summarizes an ingest: how many rows were retained and how many
// were dropped for an unparsable report timestamp.
type LoadStats struct {
	Rows    int `json:"rows"`
	Dropped int `json:"dropped"`
}

// Load reads complaint records from the named sheet of a workbook.
//
// Returns:
//   - []complaint.Record: retained records, every one with a valid ReportTime
//   - LoadStats: retained/dropped row counts
//   - error: *errors.SheetNotFoundError, *errors.MissingColumnError or an
//     *errors.UploadError when the file itself cannot be read
func Load(r io.Reader, sheetName string) ([]complaint.Record, LoadStats, error) {
	var stats LoadStats

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, stats, cdasherrors.NewUploadError("cannot open workbook", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, stats, cdasherrors.NewSheetNotFoundError(sheetName, f.GetSheetList())
	}
	if len(rows) == 0 {
		return nil, stats, cdasherrors.NewMissingColumnError(colCategory)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, stats, err
	}

	records := make([]complaint.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		reportTime, ok := parseReportTime(cell(row, cols[colReported]))
		if !ok {
			// Unparsable timestamps are dropped without surfacing an error
			stats.Dropped++
			continue
		}

		subject := cell(row, cols[colSubject])
		rec := complaint.Record{
			Category:   complaint.NormalizeCategory(cell(row, cols[colCategory])),
			Product:    cell(row, cols[colProduct]),
			ReportTime: reportTime,
			Facility:   cell(row, cols[colFacility]),
			Picker:     cell(row, cols[colPicker]),
			Subject:    subject,
			Reporter:   complaint.ExtractReporter(subject),
		}
		rec.Derive()
		records = append(records, rec)
	}

	stats.Rows = len(records)
	if stats.Dropped > 0 {
		log.Printf("⚠️  Dropped %d rows with unparsable report timestamps", stats.Dropped)
	}

	return records, stats, nil
}

// mapColumns resolves each required column header to its index in the row.
func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	cols := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := index[name]
		if !ok {
			return nil, cdasherrors.NewMissingColumnError(name)
		}
		cols[name] = i
	}
	return cols, nil
}

// cell returns the trimmed value at index i, tolerating short rows.
// excelize omits trailing empty cells from GetRows results.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseReportTime parses a report timestamp cell.
//
// Tries the known string layouts first, then falls back to interpreting the
// value as an Excel serial number (days since the 1900 epoch, fraction is
// time of day).
func parseReportTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		return fromExcelSerial(serial), true
	}

	return time.Time{}, false
}

// fromExcelSerial converts an Excel serial date number to a time.Time,
// rounded to the nearest second.
func fromExcelSerial(serial float64) time.Time {
	days := math.Floor(serial)
	frac := serial - days
	seconds := math.Round(frac * 24 * 60 * 60)
	return excelEpoch.
		AddDate(0, 0, int(days)).
		Add(time.Duration(seconds) * time.Second)
}
