package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/angelmondragon/labstock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labstock-backend/pkg/errors"
)

const (
	usnLength   = 10
	phoneLength = 10
)

// MaxCount bounds every count and quantity accepted from callers.
const MaxCount = 1_000_000_000

// Form validation runs before the store is touched. Each form returns the
// first violated rule as a single validation error.

func invalid(field, message string) error {
	err := pkgerrors.New(pkgerrors.CodeValidation, message)
	if field == "" {
		return err
	}
	return err.WithDetails(map[string]any{"field": field})
}

// parseCount parses a base-10 integer, reporting ok=false for blank or
// malformed text.
func parseCount(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func tooLarge(field, label string) error {
	return invalid(field, fmt.Sprintf("%s cannot exceed %d", label, MaxCount))
}

// ProductInput is a validated product form.
type ProductInput struct {
	Name         string
	MasterCount  int
	Availability int
}

type ProductForm struct {
	Name         string
	MasterCount  string
	Availability string
}

func (f ProductForm) Validate() (ProductInput, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ProductInput{}, invalid("name", "Please enter a product name")
	}

	master, ok := parseCount(f.MasterCount)
	if !ok || master <= 0 {
		return ProductInput{}, invalid("master_count", "Master count must be a positive number")
	}
	if master > MaxCount {
		return ProductInput{}, tooLarge("master_count", "Master count")
	}

	available, ok := parseCount(f.Availability)
	if !ok || available < 0 {
		return ProductInput{}, invalid("availability", "Availability must be a non-negative number")
	}
	if available > MaxCount {
		return ProductInput{}, tooLarge("availability", "Availability")
	}

	if available > master {
		return ProductInput{}, invalid("availability", "Availability cannot exceed master count")
	}

	return ProductInput{Name: name, MasterCount: master, Availability: available}, nil
}

// ProductUpdateForm holds optional edits; nil fields are left unchanged.
type ProductUpdateForm struct {
	Name         *string
	MasterCount  *string
	Availability *string
}

// Validate checks the edits against the product's current counts.
func (f ProductUpdateForm) Validate(current Product) (ProductPatch, error) {
	if f.Name == nil && f.MasterCount == nil && f.Availability == nil {
		return ProductPatch{}, invalid("", "Nothing to update")
	}

	var patch ProductPatch
	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		if name == "" {
			return ProductPatch{}, invalid("name", "Please enter a product name")
		}
		patch.Name = &name
	}

	master := current.MasterCount
	if f.MasterCount != nil {
		n, ok := parseCount(*f.MasterCount)
		if !ok || n <= 0 {
			return ProductPatch{}, invalid("master_count", "Master count must be a positive number")
		}
		if n > MaxCount {
			return ProductPatch{}, tooLarge("master_count", "Master count")
		}
		master = n
		patch.MasterCount = &n
	}

	available := current.Availability
	if f.Availability != nil {
		n, ok := parseCount(*f.Availability)
		if !ok || n < 0 {
			return ProductPatch{}, invalid("availability", "Availability must be a non-negative number")
		}
		if n > MaxCount {
			return ProductPatch{}, tooLarge("availability", "Availability")
		}
		available = n
		patch.Availability = &n
	}

	if available > master {
		return ProductPatch{}, invalid("availability", "Availability cannot exceed master count")
	}
	return patch, nil
}

type RestockForm struct {
	Quantity string
}

func (f RestockForm) Validate() (int, error) {
	quantity, ok := parseCount(f.Quantity)
	if !ok || quantity <= 0 {
		return 0, invalid("quantity", "Quantity must be at least 1")
	}
	if quantity > MaxCount {
		return 0, tooLarge("quantity", "Quantity")
	}
	return quantity, nil
}

type DefectiveForm struct {
	Quantity string
}

func (f DefectiveForm) Validate(product Product) (int, error) {
	quantity, ok := parseCount(f.Quantity)
	if !ok || quantity <= 0 {
		return 0, invalid("quantity", "Quantity must be at least 1")
	}
	if quantity > product.Availability {
		return 0, invalid("quantity", fmt.Sprintf("Quantity cannot exceed availability (%d)", product.Availability))
	}
	return quantity, nil
}

// RecordForm is the borrow/purchase entry form. Type defaults to borrow.
type RecordForm struct {
	StudentName string
	USN         string
	PhoneNumber string
	Section     string
	TakenDate   string
	ReturnDate  string
	Type        string
	Quantity    string
}

func (f RecordForm) Validate(product Product) (NewRecord, error) {
	studentName := strings.TrimSpace(f.StudentName)
	usn := strings.ToUpper(strings.TrimSpace(f.USN))
	phone := digitsOnly(f.PhoneNumber)
	section := strings.ToUpper(strings.TrimSpace(f.Section))
	takenDate := strings.TrimSpace(f.TakenDate)
	returnDate := strings.TrimSpace(f.ReturnDate)

	if studentName == "" || usn == "" || phone == "" || section == "" || takenDate == "" {
		return NewRecord{}, invalid("", "Please fill in all required fields")
	}

	if utf8.RuneCountInString(usn) != usnLength {
		return NewRecord{}, invalid("usn", "USN must be exactly 10 characters")
	}

	if len(phone) != phoneLength {
		return NewRecord{}, invalid("phone_number", "Phone number must be exactly 10 digits")
	}

	taken, err := time.Parse(DateLayout, takenDate)
	if err != nil {
		return NewRecord{}, invalid("taken_date", "Taken date must be a valid date (YYYY-MM-DD)")
	}
	if returnDate != "" {
		returned, err := time.Parse(DateLayout, returnDate)
		if err != nil {
			return NewRecord{}, invalid("return_date", "Return date must be a valid date (YYYY-MM-DD)")
		}
		if !returned.After(taken) {
			return NewRecord{}, invalid("return_date", "Return date must be greater than taken date")
		}
	}

	recordType := enums.RecordTypeBorrow
	if strings.TrimSpace(f.Type) != "" {
		parsed, err := enums.ParseRecordType(f.Type)
		if err != nil {
			return NewRecord{}, invalid("type", "Type must be borrow or purchase")
		}
		recordType = parsed
	}

	quantity, ok := parseCount(f.Quantity)
	if !ok || quantity <= 0 {
		return NewRecord{}, invalid("quantity", "Quantity must be at least 1")
	}
	if quantity > MaxCount {
		return NewRecord{}, tooLarge("quantity", "Quantity")
	}

	switch recordType {
	case enums.RecordTypeBorrow:
		if quantity > product.Availability {
			return NewRecord{}, invalid("quantity", fmt.Sprintf("Not enough available stock. Maximum: %d", product.Availability))
		}
	case enums.RecordTypePurchase:
		if quantity > product.MasterCount {
			return NewRecord{}, invalid("quantity", fmt.Sprintf("Not enough stock. Maximum: %d", product.MasterCount))
		}
	}

	return NewRecord{
		ProductID:   product.ID,
		StudentName: studentName,
		USN:         usn,
		PhoneNumber: phone,
		Section:     section,
		TakenDate:   taken.Format(DateLayout),
		ReturnDate:  returnDate,
		Type:        recordType,
		Quantity:    quantity,
	}, nil
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
