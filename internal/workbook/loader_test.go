package workbook

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	cdasherrors "cdash/internal/errors"
)

// buildWorkbook assembles an in-memory xlsx with the given sheet name,
// the standard header row and the given data rows.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	header := []interface{}{
		"Main Category Name", "Product Name", "Ticket Created At eet",
		"FP Name", "Picker Name", "Ticket Subject",
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoad(t *testing.T) {
	buf := buildWorkbook(t, "Internal Requests", [][]interface{}{
		{"Wrong Item", "Milk 1L", "2026-03-02 14:30:00", "FC-East", "P. Kumar", "wrong barcode reported by Jane Doe"},
		{"", "Eggs 12pk", "2026-03-03 09:05:00", "FC-West", "A. Patel", "cracked shells"},
		{"Damaged", "Rice 5kg", "not a date", "FC-East", "R. Shah", "torn bag reported by Bob"},
	})

	records, stats, err := Load(buf, "Internal Requests")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.Dropped)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Wrong Item", first.Category)
	assert.Equal(t, "Milk 1L", first.Product)
	assert.Equal(t, "Jane Doe", first.Reporter)
	assert.Equal(t, "FC-East", first.Facility)
	assert.Equal(t, "P. Kumar", first.Picker)
	assert.Equal(t, "2026-03-02", first.Date)
	assert.Equal(t, "Monday", first.Day)
	assert.Equal(t, 14, first.Hour)

	// Blank category is coerced to the sentinel, subject with no match
	// yields Unknown
	second := records[1]
	assert.Equal(t, "Undefined", second.Category)
	assert.Equal(t, "Unknown", second.Reporter)
}

func TestLoadSheetNotFound(t *testing.T) {
	buf := buildWorkbook(t, "Wrong Sheet", nil)

	_, _, err := Load(buf, "Internal Requests")
	require.Error(t, err)
	assert.True(t, cdasherrors.IsSheetNotFound(err))
	assert.Contains(t, err.Error(), "Wrong Sheet")
}

func TestLoadMissingColumn(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Internal Requests"))
	header := []interface{}{"Main Category Name", "Product Name"}
	require.NoError(t, f.SetSheetRow("Internal Requests", "A1", &header))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, _, err = Load(buf, "Internal Requests")
	require.Error(t, err)
	assert.True(t, cdasherrors.IsMissingColumn(err))
}

func TestLoadNotAWorkbook(t *testing.T) {
	_, _, err := Load(bytes.NewReader([]byte("definitely not xlsx")), "Internal Requests")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload error")
}

func TestParseReportTime(t *testing.T) {
	tests := map[string]struct {
		value string
		want  time.Time
		ok    bool
	}{
		"DateTime":   {"2026-03-02 14:30:00", time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC), true},
		"ISO":        {"2026-03-02T14:30:00", time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC), true},
		"DateOnly":   {"2026-03-02", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), true},
		"USStyle":    {"3/2/2026 14:30", time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC), true},
		"Serial":     {"45000.5", time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC), true},
		"Garbage":    {"soon", time.Time{}, false},
		"Empty":      {"", time.Time{}, false},
		"NegativeNo": {"-3", time.Time{}, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := parseReportTime(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}
