package inventory

import (
	"time"

	"github.com/angelmondragon/labstock-backend/pkg/enums"
)

// DateLayout is the calendar date format used for taken/return dates.
const DateLayout = "2006-01-02"

// Product is a stock line. Availability never exceeds MasterCount.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MasterCount  int       `json:"master_count"`
	Availability int       `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductPatch carries the fields UpdateProduct merges; nil fields are kept.
type ProductPatch struct {
	Name         *string
	MasterCount  *int
	Availability *int
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.MasterCount == nil && p.Availability == nil
}

// Record is a borrow or purchase transaction against a product.
type Record struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	StudentName string           `json:"student_name"`
	USN         string           `json:"usn"`
	PhoneNumber string           `json:"phone_number"`
	Section     string           `json:"section"`
	TakenDate   string           `json:"taken_date"`
	ReturnDate  string           `json:"return_date,omitempty"`
	Type        enums.RecordType `json:"type"`
	Quantity    int              `json:"quantity"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewRecord is the caller-supplied part of a Record.
type NewRecord struct {
	ProductID   string
	StudentName string
	USN         string
	PhoneNumber string
	Section     string
	TakenDate   string
	ReturnDate  string
	Type        enums.RecordType
	Quantity    int
}

// StockEvent is a ledger entry for a restock or defect operation.
type StockEvent struct {
	ID        string               `json:"id"`
	ProductID string               `json:"product_id"`
	Type      enums.StockEventType `json:"type"`
	Quantity  int                  `json:"quantity"`
	CreatedAt time.Time            `json:"created_at"`
}

type MonthlyReport struct {
	Month            string `json:"month"`
	NewlyPurchased   int    `json:"newly_purchased"`
	DefectiveRemoved int    `json:"defective_removed"`
	OpeningStock     int    `json:"opening_stock"`
	ClosingStock     int    `json:"closing_stock"`
	UtilizedItems    int    `json:"utilized_items"`
}

// Totals aggregates the whole store: counts across products and record
// quantities split by type.
type Totals struct {
	Products     int `json:"total_products"`
	MasterCount  int `json:"total_master_count"`
	Availability int `json:"total_availability"`
	Borrowed     int `json:"total_borrowed"`
	Purchased    int `json:"total_purchased"`
}
