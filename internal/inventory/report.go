package inventory

import (
	"time"

	"github.com/angelmondragon/labstock-backend/pkg/enums"
)

// ReportMonths is the fixed calendar window covered by GetMonthlyReport.
var ReportMonths = []time.Month{
	time.January,
	time.February,
	time.March,
	time.April,
	time.May,
	time.June,
}

// GetMonthlyReport buckets records and ledger events by the month of their
// creation time (any year) in the store's location.
//
// Opening stock adds the month's borrowed and purchased quantities back onto
// the current master total; closing stock is the current availability total.
func (s *Store) GetMonthlyReport() []MonthlyReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := s.totalsLocked()

	type bucket struct {
		borrowed, purchased, restocked, defective int
	}
	buckets := make(map[time.Month]*bucket, len(ReportMonths))
	for _, month := range ReportMonths {
		buckets[month] = &bucket{}
	}

	for _, record := range s.records {
		b, ok := buckets[record.CreatedAt.In(s.location).Month()]
		if !ok {
			continue
		}
		switch record.Type {
		case enums.RecordTypeBorrow:
			b.borrowed = saturatingAdd(b.borrowed, record.Quantity)
		case enums.RecordTypePurchase:
			b.purchased = saturatingAdd(b.purchased, record.Quantity)
		}
	}
	for _, event := range s.ledger {
		b, ok := buckets[event.CreatedAt.In(s.location).Month()]
		if !ok {
			continue
		}
		switch event.Type {
		case enums.StockEventTypeRestock:
			b.restocked = saturatingAdd(b.restocked, event.Quantity)
		case enums.StockEventTypeDefective:
			b.defective = saturatingAdd(b.defective, event.Quantity)
		}
	}

	reports := make([]MonthlyReport, 0, len(ReportMonths))
	for _, month := range ReportMonths {
		b := buckets[month]
		reports = append(reports, MonthlyReport{
			Month:            month.String(),
			NewlyPurchased:   b.restocked,
			DefectiveRemoved: b.defective,
			OpeningStock:     saturatingAdd(totals.MasterCount, saturatingAdd(b.borrowed, b.purchased)),
			ClosingStock:     totals.Availability,
			UtilizedItems:    b.borrowed,
		})
	}
	return reports
}
