package enums

import "fmt"

// StockEventType describes the ledger entries written by restock and defect operations.
type StockEventType string

const (
	StockEventTypeRestock   StockEventType = "restock"
	StockEventTypeDefective StockEventType = "defective"
)

var validStockEventTypes = []StockEventType{
	StockEventTypeRestock,
	StockEventTypeDefective,
}

func (s StockEventType) IsValid() bool {
	for _, candidate := range validStockEventTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseStockEventType(value string) (StockEventType, error) {
	for _, candidate := range validStockEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock event type %q", value)
}
