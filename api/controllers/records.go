package controllers

import (
	"net/http"

	"github.com/angelmondragon/labstock-backend/api/responses"
	"github.com/angelmondragon/labstock-backend/api/validators"
	"github.com/angelmondragon/labstock-backend/internal/inventory"
	"github.com/angelmondragon/labstock-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type createRecordRequest struct {
	StudentName validators.Text `json:"student_name"`
	USN         validators.Text `json:"usn"`
	PhoneNumber validators.Text `json:"phone_number"`
	Section     validators.Text `json:"section"`
	TakenDate   validators.Text `json:"taken_date"`
	ReturnDate  validators.Text `json:"return_date"`
	Type        validators.Text `json:"type"`
	Quantity    validators.Text `json:"quantity"`
}

func (p createRecordRequest) toForm() inventory.RecordForm {
	return inventory.RecordForm{
		StudentName: p.StudentName.String(),
		USN:         p.USN.String(),
		PhoneNumber: p.PhoneNumber.String(),
		Section:     p.Section.String(),
		TakenDate:   p.TakenDate.String(),
		ReturnDate:  p.ReturnDate.String(),
		Type:        p.Type.String(),
		Quantity:    p.Quantity.String(),
	}
}

func ListProductRecords(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		records, err := svc.ListRecords(r.Context(), chi.URLParam(r, productIDParam))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// CreateProductRecord logs a borrow or purchase against the product.
func CreateProductRecord(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		var payload createRecordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CreateRecord(r.Context(), chi.URLParam(r, productIDParam), payload.toForm())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}
