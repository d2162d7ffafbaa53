package enums

import (
	"fmt"
	"strings"
)

// ExportFormat selects the file type of a monthly report export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

var validExportFormats = []ExportFormat{
	ExportFormatCSV,
	ExportFormatXLSX,
}

func (e ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseExportFormat defaults to csv when value is blank.
func ParseExportFormat(value string) (ExportFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ExportFormatCSV, nil
	}
	for _, candidate := range validExportFormats {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}
