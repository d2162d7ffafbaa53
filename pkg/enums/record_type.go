package enums

import (
	"fmt"
	"strings"
)

// RecordType describes how a transaction record moves stock.
type RecordType string

const (
	// RecordTypeBorrow takes units out of availability only.
	RecordTypeBorrow RecordType = "borrow"
	// RecordTypePurchase removes units from both the owned pool and availability.
	RecordTypePurchase RecordType = "purchase"
)

var validRecordTypes = []RecordType{
	RecordTypeBorrow,
	RecordTypePurchase,
}

// IsValid reports whether the value matches the canonical record type enum.
func (r RecordType) IsValid() bool {
	for _, candidate := range validRecordTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRecordType converts the raw string to RecordType, ignoring case and padding.
func ParseRecordType(value string) (RecordType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validRecordTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record type %q", value)
}
