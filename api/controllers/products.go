package controllers

import (
	"net/http"

	"github.com/angelmondragon/labstock-backend/api/responses"
	"github.com/angelmondragon/labstock-backend/api/validators"
	"github.com/angelmondragon/labstock-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/labstock-backend/pkg/errors"
	"github.com/angelmondragon/labstock-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const productIDParam = "productId"

type createProductRequest struct {
	Name         validators.Text `json:"name"`
	MasterCount  validators.Text `json:"master_count"`
	Availability validators.Text `json:"availability"`
}

func (p createProductRequest) toForm() inventory.ProductForm {
	return inventory.ProductForm{
		Name:         p.Name.String(),
		MasterCount:  p.MasterCount.String(),
		Availability: p.Availability.String(),
	}
}

type updateProductRequest struct {
	Name         *validators.Text `json:"name,omitempty"`
	MasterCount  *validators.Text `json:"master_count,omitempty"`
	Availability *validators.Text `json:"availability,omitempty"`
}

func (p updateProductRequest) toForm() inventory.ProductUpdateForm {
	return inventory.ProductUpdateForm{
		Name:         p.Name.Ptr(),
		MasterCount:  p.MasterCount.Ptr(),
		Availability: p.Availability.Ptr(),
	}
}

type quantityRequest struct {
	Quantity validators.Text `json:"quantity"`
}

func unavailable(name string) error {
	return pkgerrors.New(pkgerrors.CodeInternal, name+" unavailable")
}

// ListProducts returns the catalogue, filtered by ?q= when present.
func ListProducts(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		products, err := svc.ListProducts(r.Context(), validators.QueryText(r, "q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func GetProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, productIDParam))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func CreateProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toForm())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func UpdateProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, productIDParam), payload.toForm())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct answers 204 whether or not the product existed.
func DeleteProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, productIDParam)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func RestockProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		var payload quantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Restock(r.Context(), chi.URLParam(r, productIDParam), inventory.RestockForm{Quantity: payload.Quantity.String()})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func MarkProductDefective(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("inventory service"))
			return
		}

		var payload quantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.MarkDefective(r.Context(), chi.URLParam(r, productIDParam), inventory.DefectiveForm{Quantity: payload.Quantity.String()})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
