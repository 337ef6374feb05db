package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aksps/billwise-backend/api/responses"
	"github.com/aksps/billwise-backend/api/validators"
	productsvc "github.com/aksps/billwise-backend/internal/products"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
	"github.com/aksps/billwise-backend/pkg/logger"
)

type createProductRequest struct {
	SKU           string  `json:"sku" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	SellingPrice  float64 `json:"selling_price_per_base_unit" validate:"required,gt=0"`
	UnitType      string  `json:"unit_type" validate:"required"`
	BaseUnit      string  `json:"base_unit" validate:"required"`
	CurrentStock  int     `json:"current_stock" validate:"omitempty,min=0"`
	MinStockLevel int     `json:"min_stock_level" validate:"omitempty,min=0"`
}

type updateProductRequest struct {
	Name          *string  `json:"name,omitempty"`
	SellingPrice  *float64 `json:"selling_price_per_base_unit,omitempty" validate:"omitempty,gt=0"`
	MinStockLevel *int     `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
}

// CreateProduct handles POST /api/v1/products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), productsvc.CreateInput{
			SKU:           payload.SKU,
			Name:          payload.Name,
			SellingPrice:  decimal.NewFromFloat(payload.SellingPrice),
			UnitType:      payload.UnitType,
			BaseUnit:      payload.BaseUnit,
			CurrentStock:  payload.CurrentStock,
			MinStockLevel: payload.MinStockLevel,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct handles PATCH /api/v1/products/{productID}.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateInput{
			Name:          payload.Name,
			MinStockLevel: payload.MinStockLevel,
		}
		if payload.SellingPrice != nil {
			price := decimal.NewFromFloat(*payload.SellingPrice)
			input.SellingPrice = &price
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles DELETE /api/v1/products/{productID}.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetProduct handles GET /api/v1/products/{productID}. SKUs are accepted in
// place of uuids so barcode scans can hit the endpoint directly.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "productID")
		if id, err := uuid.Parse(raw); err == nil {
			product, err := svc.GetByID(r.Context(), id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, product)
			return
		}

		product, err := svc.GetBySKU(r.Context(), raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListProducts handles GET /api/v1/products. The low_stock filter returns
// only products below their minimum stock level.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lowStock := strings.EqualFold(r.URL.Query().Get("low_stock"), "true")

		var (
			err     error
			records any
		)
		if lowStock {
			records, err = svc.ListBelowMinStock(r.Context())
		} else {
			records, err = svc.List(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
