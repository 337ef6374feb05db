package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aksps/billwise-backend/api/responses"
	"github.com/aksps/billwise-backend/api/validators"
	billingsvc "github.com/aksps/billwise-backend/internal/billing"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
	"github.com/aksps/billwise-backend/pkg/logger"
)

type createSaleRequest struct {
	CustomerName    string            `json:"customer_name"`
	ContactNumber   string            `json:"contact_number"`
	DiscountPercent *float64          `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	Items           []saleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type saleItemRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

func (r createSaleRequest) toInput() billingsvc.SaleInput {
	input := billingsvc.SaleInput{
		CustomerName:  strings.TrimSpace(r.CustomerName),
		ContactNumber: strings.TrimSpace(r.ContactNumber),
	}
	if r.DiscountPercent != nil {
		input.DiscountPercent = decimal.NewFromFloat(*r.DiscountPercent)
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, billingsvc.SaleItemInput{
			SKU:      strings.TrimSpace(item.SKU),
			Quantity: item.Quantity,
		})
	}
	return input
}

// CreateSale handles POST /api/v1/invoices.
func CreateSale(svc billingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		var payload createSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.CreateSale(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithInvoiceNumber(r.Context(), snapshot.InvoiceNumber)
			logg.Info(ctx, "sale recorded")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, snapshot)
	}
}

// GetInvoice handles GET /api/v1/invoices/{invoiceID}.
func GetInvoice(svc billingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "invoiceID")

		// Accept both the uuid and the public "INV-n" number.
		if strings.HasPrefix(strings.ToUpper(raw), "INV-") {
			snapshot, err := svc.GetInvoiceByNumber(r.Context(), strings.ToUpper(raw))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, snapshot)
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice id"))
			return
		}
		snapshot, err := svc.GetInvoiceByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// ListInvoices handles GET /api/v1/invoices.
func ListInvoices(svc billingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshots, err := svc.ListInvoices(r.Context(), limit, offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshots)
	}
}
