package inventory

import (
	"testing"

	"github.com/angelmondragon/labstock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labstock-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func requireValidationMessage(t *testing.T, err error, want string) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, want, typed.Message())
}

func TestProductFormValidate(t *testing.T) {
	cases := []struct {
		name string
		form ProductForm
		want string
	}{
		{"blank name", ProductForm{Name: "  ", MasterCount: "5", Availability: "5"}, "Please enter a product name"},
		{"non numeric master", ProductForm{Name: "A", MasterCount: "five", Availability: "5"}, "Master count must be a positive number"},
		{"zero master", ProductForm{Name: "A", MasterCount: "0", Availability: "0"}, "Master count must be a positive number"},
		{"blank availability", ProductForm{Name: "A", MasterCount: "5", Availability: ""}, "Availability must be a non-negative number"},
		{"negative availability", ProductForm{Name: "A", MasterCount: "5", Availability: "-1"}, "Availability must be a non-negative number"},
		{"availability over master", ProductForm{Name: "A", MasterCount: "5", Availability: "6"}, "Availability cannot exceed master count"},
		{"first rule wins", ProductForm{Name: "", MasterCount: "x", Availability: "y"}, "Please enter a product name"},
		{"master over ceiling", ProductForm{Name: "A", MasterCount: "9223372036854775807", Availability: "0"}, "Master count cannot exceed 1000000000"},
		{"availability over ceiling", ProductForm{Name: "A", MasterCount: "5", Availability: "1000000001"}, "Availability cannot exceed 1000000000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.form.Validate()
			requireValidationMessage(t, err, tc.want)
		})
	}

	input, err := ProductForm{Name: " Arduino Uno ", MasterCount: " 50", Availability: "45 "}.Validate()
	require.NoError(t, err)
	assert.Equal(t, ProductInput{Name: "Arduino Uno", MasterCount: 50, Availability: 45}, input)
}

func TestProductUpdateFormValidate(t *testing.T) {
	current := Product{ID: "1", Name: "Arduino Uno", MasterCount: 50, Availability: 45}

	_, err := ProductUpdateForm{}.Validate(current)
	requireValidationMessage(t, err, "Nothing to update")

	_, err = ProductUpdateForm{Name: strPtr(" ")}.Validate(current)
	requireValidationMessage(t, err, "Please enter a product name")

	_, err = ProductUpdateForm{MasterCount: strPtr("40")}.Validate(current)
	requireValidationMessage(t, err, "Availability cannot exceed master count")

	_, err = ProductUpdateForm{Availability: strPtr("-2")}.Validate(current)
	requireValidationMessage(t, err, "Availability must be a non-negative number")

	_, err = ProductUpdateForm{MasterCount: strPtr("1000000001")}.Validate(current)
	requireValidationMessage(t, err, "Master count cannot exceed 1000000000")

	patch, err := ProductUpdateForm{MasterCount: strPtr("40"), Availability: strPtr("40")}.Validate(current)
	require.NoError(t, err)
	require.NotNil(t, patch.MasterCount)
	require.NotNil(t, patch.Availability)
	assert.Nil(t, patch.Name)
	assert.Equal(t, 40, *patch.MasterCount)
	assert.Equal(t, 40, *patch.Availability)
}

func TestRestockAndDefectiveForms(t *testing.T) {
	_, err := RestockForm{Quantity: "0"}.Validate()
	requireValidationMessage(t, err, "Quantity must be at least 1")
	_, err = RestockForm{Quantity: "ten"}.Validate()
	requireValidationMessage(t, err, "Quantity must be at least 1")
	_, err = RestockForm{Quantity: "9223372036854775807"}.Validate()
	requireValidationMessage(t, err, "Quantity cannot exceed 1000000000")
	q, err := RestockForm{Quantity: "1000000000"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, MaxCount, q)
	q, err = RestockForm{Quantity: "10"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, 10, q)

	product := Product{ID: "1", MasterCount: 50, Availability: 45}
	_, err = DefectiveForm{Quantity: "-1"}.Validate(product)
	requireValidationMessage(t, err, "Quantity must be at least 1")
	_, err = DefectiveForm{Quantity: "46"}.Validate(product)
	requireValidationMessage(t, err, "Quantity cannot exceed availability (45)")
	q, err = DefectiveForm{Quantity: "45"}.Validate(product)
	require.NoError(t, err)
	assert.Equal(t, 45, q)
}

func validRecordForm() RecordForm {
	return RecordForm{
		StudentName: "John Doe",
		USN:         "1ms21cs001",
		PhoneNumber: "98765-43210",
		Section:     " a ",
		TakenDate:   "2024-03-01",
		ReturnDate:  "2024-03-15",
		Type:        "borrow",
		Quantity:    "2",
	}
}

func TestRecordFormValidateNormalizes(t *testing.T) {
	product := Product{ID: "1", MasterCount: 50, Availability: 45}

	record, err := validRecordForm().Validate(product)
	require.NoError(t, err)
	assert.Equal(t, NewRecord{
		ProductID:   "1",
		StudentName: "John Doe",
		USN:         "1MS21CS001",
		PhoneNumber: "9876543210",
		Section:     "A",
		TakenDate:   "2024-03-01",
		ReturnDate:  "2024-03-15",
		Type:        enums.RecordTypeBorrow,
		Quantity:    2,
	}, record)

	form := validRecordForm()
	form.Type = ""
	form.ReturnDate = ""
	record, err = form.Validate(product)
	require.NoError(t, err)
	assert.Equal(t, enums.RecordTypeBorrow, record.Type)
	assert.Empty(t, record.ReturnDate)
}

func TestRecordFormValidateRules(t *testing.T) {
	product := Product{ID: "1", MasterCount: 50, Availability: 45}

	cases := []struct {
		name   string
		mutate func(*RecordForm)
		want   string
	}{
		{"missing name", func(f *RecordForm) { f.StudentName = " " }, "Please fill in all required fields"},
		{"missing section", func(f *RecordForm) { f.Section = "" }, "Please fill in all required fields"},
		{"missing taken date", func(f *RecordForm) { f.TakenDate = "" }, "Please fill in all required fields"},
		{"phone without digits", func(f *RecordForm) { f.PhoneNumber = "call me" }, "Please fill in all required fields"},
		{"short usn", func(f *RecordForm) { f.USN = "1MS21CS01" }, "USN must be exactly 10 characters"},
		{"long phone", func(f *RecordForm) { f.PhoneNumber = "+91 98765 43210" }, "Phone number must be exactly 10 digits"},
		{"bad taken date", func(f *RecordForm) { f.TakenDate = "03/01/2024" }, "Taken date must be a valid date (YYYY-MM-DD)"},
		{"bad return date", func(f *RecordForm) { f.ReturnDate = "2024-13-01" }, "Return date must be a valid date (YYYY-MM-DD)"},
		{"return equals taken", func(f *RecordForm) { f.ReturnDate = "2024-03-01" }, "Return date must be greater than taken date"},
		{"return before taken", func(f *RecordForm) { f.ReturnDate = "2024-02-28" }, "Return date must be greater than taken date"},
		{"unknown type", func(f *RecordForm) { f.Type = "lend" }, "Type must be borrow or purchase"},
		{"zero quantity", func(f *RecordForm) { f.Quantity = "0" }, "Quantity must be at least 1"},
		{"non numeric quantity", func(f *RecordForm) { f.Quantity = "lots" }, "Quantity must be at least 1"},
		{"quantity over ceiling", func(f *RecordForm) { f.Quantity = "1000000001" }, "Quantity cannot exceed 1000000000"},
		{"borrow over availability", func(f *RecordForm) { f.Quantity = "46" }, "Not enough available stock. Maximum: 45"},
		{"purchase over master", func(f *RecordForm) { f.Type = "purchase"; f.Quantity = "51" }, "Not enough stock. Maximum: 50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validRecordForm()
			tc.mutate(&form)
			_, err := form.Validate(product)
			requireValidationMessage(t, err, tc.want)
		})
	}
}

func TestRecordFormPurchaseCanExceedAvailability(t *testing.T) {
	product := Product{ID: "1", MasterCount: 50, Availability: 45}
	form := validRecordForm()
	form.Type = "purchase"
	form.Quantity = "48"

	record, err := form.Validate(product)
	require.NoError(t, err)
	assert.Equal(t, enums.RecordTypePurchase, record.Type)
	assert.Equal(t, 48, record.Quantity)
}

func TestValidationDetailsNameTheField(t *testing.T) {
	form := validRecordForm()
	form.USN = "short"
	_, err := form.Validate(Product{ID: "1", MasterCount: 1, Availability: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, map[string]any{"field": "usn"}, typed.Details())
}
