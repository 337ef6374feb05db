package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aksps/billwise-backend/api/responses"
	"github.com/aksps/billwise-backend/api/validators"
	customersvc "github.com/aksps/billwise-backend/internal/customers"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
	"github.com/aksps/billwise-backend/pkg/logger"
)

type createCustomerRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactNumber string `json:"contact_number,omitempty"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	GSTNumber     string `json:"gst_number,omitempty"`
}

// CreateCustomer handles POST /api/v1/customers.
func CreateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), customersvc.CreateInput{
			Name:          payload.Name,
			ContactNumber: payload.ContactNumber,
			Email:         payload.Email,
			GSTNumber:     payload.GSTNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// GetCustomer handles GET /api/v1/customers/{customerID}. A contact number
// is accepted in place of a uuid for checkout prefill.
func GetCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(chi.URLParam(r, "customerID"))
		if id, err := uuid.Parse(raw); err == nil {
			customer, err := svc.GetByID(r.Context(), id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, customer)
			return
		}

		customer, err := svc.GetByContactNumber(r.Context(), raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// ListCustomers handles GET /api/v1/customers.
func ListCustomers(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
