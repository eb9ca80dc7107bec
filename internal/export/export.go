// Package export serializes a filtered report to a two-sheet Excel workbook.
//
// Sheet "Category Summary" holds one row per category (count, percentage,
// formatted reporter string); sheet "Detailed Complaints" holds one row per
// filtered record. Plain tabular cells, no styling.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"cdash/internal/complaint"
	"cdash/internal/report"
)

// Sheet names of the generated workbook.
const (
	SummarySheet = "Category Summary"
	DetailSheet  = "Detailed Complaints"
)

// FileName is the suggested download name for the export.
const FileName = "complaints_analysis.xlsx"

const timeLayout = "2006-01-02 15:04:05"

// Build renders the report and its filtered records into xlsx bytes.
func Build(rep report.Report, filtered []complaint.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(DetailSheet); err != nil {
		return nil, fmt.Errorf("create detail sheet: %w", err)
	}

	if err := writeSummary(f, rep); err != nil {
		return nil, err
	}
	if err := writeDetail(f, filtered); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, rep report.Report) error {
	header := []interface{}{"Category", "Complaints", "Percentage", "Reporters (Count)"}
	if err := setRow(f, SummarySheet, 1, header); err != nil {
		return err
	}

	for i, stat := range rep.Stats {
		row := []interface{}{stat.Category, stat.Count, stat.Percentage, stat.TopReporters}
		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDetail(f *excelize.File, filtered []complaint.Record) error {
	header := []interface{}{"Date", "Report Time", "Category", "Product", "Reporter", "Facility"}
	if err := setRow(f, DetailSheet, 1, header); err != nil {
		return err
	}

	for i, rec := range filtered {
		row := []interface{}{
			rec.Date,
			rec.ReportTime.Format(timeLayout),
			rec.Category,
			rec.Product,
			rec.Reporter,
			rec.Facility,
		}
		if err := setRow(f, DetailSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
