package analytics

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/angelmondragon/labstock-backend/internal/inventory"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	reportSheet = "Report"
)

// reportRows lays out the monthly report. Row order and labels are part of the
// export format consumers parse.
func reportRows(row inventory.MonthlyReport, summary Summary) [][]any {
	return [][]any{
		{"Monthly Analytics Report"},
		{"Month", row.Month},
		{""},
		{"Summary"},
		{"Total Products", summary.Products},
		{"Opening Stock", row.OpeningStock},
		{"Closing Stock", row.ClosingStock},
		{"Newly Purchased", row.NewlyPurchased},
		{"Defective Removed", row.DefectiveRemoved},
		{"Utilized Items", row.UtilizedItems},
		{""},
		{"Detailed Report"},
		{"Metric", "Value"},
		{"Total Master Count", summary.MasterCount},
		{"Total Availability", summary.Availability},
		{"Total Borrowed", summary.Borrowed},
		{"Total Purchased", summary.Purchased},
		{"Utilization Rate", fmt.Sprintf("%d%%", summary.UtilizationRate)},
	}
}

func renderCSV(rows [][]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = fmt.Sprint(cell)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 26); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
