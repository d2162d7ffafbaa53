package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/labstock-backend/internal/inventory"
	"github.com/angelmondragon/labstock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labstock-backend/pkg/errors"
	"github.com/angelmondragon/labstock-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Source is the read side of the inventory the analytics view is built from.
type Source interface {
	Totals(ctx context.Context) (inventory.Totals, error)
	MonthlyReport(ctx context.Context) ([]inventory.MonthlyReport, error)
}

type ExportMetrics interface {
	IncExport(format string)
}

// Summary is the store-wide totals plus the utilisation rate in percent.
type Summary struct {
	inventory.Totals
	UtilizationRate int `json:"utilization_rate"`
}

// Export is a rendered report file.
type Export struct {
	FileName    string
	ContentType string
	Body        []byte
}

type ServiceParams struct {
	Source  Source
	Logger  *logger.Logger
	Metrics ExportMetrics
	Clock   func() time.Time
}

type Service interface {
	Summary(ctx context.Context) (Summary, error)
	Monthly(ctx context.Context) ([]inventory.MonthlyReport, error)
	Export(ctx context.Context, month, format string) (*Export, error)
}

type service struct {
	source  Source
	logg    *logger.Logger
	metrics ExportMetrics
	now     func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "analytics source is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	now := params.Clock
	if now == nil {
		now = time.Now
	}
	return &service{
		source:  params.Source,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (s *service) Summary(ctx context.Context) (Summary, error) {
	totals, err := s.source.Totals(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(totals), nil
}

func (s *service) Monthly(ctx context.Context) ([]inventory.MonthlyReport, error) {
	return s.source.MonthlyReport(ctx)
}

// Export renders one month of the report. Month names match case-insensitively.
func (s *service) Export(ctx context.Context, month, format string) (*Export, error) {
	exportFormat, err := enums.ParseExportFormat(format)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "format must be csv or xlsx").
			WithDetails(map[string]any{"field": "format"})
	}

	reports, err := s.source.MonthlyReport(ctx)
	if err != nil {
		return nil, err
	}
	row, ok := findMonth(reports, month)
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "no report for month %q", month)
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	rows := reportRows(row, summary)
	baseName := fmt.Sprintf("Analytics-%s-%d", row.Month, s.now().Year())

	var export *Export
	switch exportFormat {
	case enums.ExportFormatXLSX:
		body, err := renderXLSX(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render xlsx report")
		}
		export = &Export{FileName: baseName + ".xlsx", ContentType: ContentTypeXLSX, Body: body}
	default:
		body, err := renderCSV(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render csv report")
		}
		export = &Export{FileName: baseName + ".csv", ContentType: ContentTypeCSV, Body: body}
	}

	if s.metrics != nil {
		s.metrics.IncExport(string(exportFormat))
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"month":  row.Month,
		"format": string(exportFormat),
		"bytes":  len(export.Body),
	})
	s.logg.Info(ctx, "analytics.export")
	return export, nil
}

// Summarize derives the utilisation rate, (master - available) / master as a
// whole percent rounded half up. An empty store reports 0.
func Summarize(totals inventory.Totals) Summary {
	summary := Summary{Totals: totals}
	if totals.MasterCount <= 0 {
		return summary
	}
	inUse := decimal.NewFromInt(int64(totals.MasterCount - totals.Availability))
	rate := inUse.
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(totals.MasterCount))).
		Round(0)
	summary.UtilizationRate = int(rate.IntPart())
	return summary
}

func findMonth(reports []inventory.MonthlyReport, month string) (inventory.MonthlyReport, bool) {
	month = strings.TrimSpace(month)
	for _, r := range reports {
		if strings.EqualFold(r.Month, month) {
			return r, true
		}
	}
	return inventory.MonthlyReport{}, false
}
