package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	billingsvc "github.com/aksps/billwise-backend/internal/billing"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
	"github.com/aksps/billwise-backend/pkg/types"
)

type stubBillingService struct {
	lastInput billingsvc.SaleInput
	snapshot  *billingsvc.SaleSnapshot
	err       error
}

func (s *stubBillingService) CreateSale(_ context.Context, input billingsvc.SaleInput) (*billingsvc.SaleSnapshot, error) {
	s.lastInput = input
	return s.snapshot, s.err
}

func (s *stubBillingService) GetInvoiceByID(context.Context, uuid.UUID) (*billingsvc.SaleSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubBillingService) GetInvoiceByNumber(context.Context, string) (*billingsvc.SaleSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubBillingService) ListInvoices(context.Context, int, int) ([]billingsvc.SaleSnapshot, error) {
	if s.snapshot == nil {
		return nil, s.err
	}
	return []billingsvc.SaleSnapshot{*s.snapshot}, s.err
}

func TestCreateSaleController(t *testing.T) {
	t.Parallel()

	svc := &stubBillingService{
		snapshot: &billingsvc.SaleSnapshot{
			InvoiceID:     uuid.New(),
			InvoiceNumber: "INV-7",
			GrandTotal:    decimal.RequireFromString("159.30"),
		},
	}
	handler := CreateSale(svc, nil)

	body := `{"customer_name":"Priya","contact_number":"9876543210","discount_percent":10,"items":[{"sku":"RICE-1KG","quantity":3}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.ContactNumber != "9876543210" {
		t.Fatalf("unexpected input: %+v", svc.lastInput)
	}
	if len(svc.lastInput.Items) != 1 || svc.lastInput.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items: %+v", svc.lastInput.Items)
	}
	if !svc.lastInput.DiscountPercent.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected discount: %s", svc.lastInput.DiscountPercent)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["invoice_number"] != "INV-7" {
		t.Fatalf("unexpected payload: %v", data)
	}
}

func TestCreateSaleControllerRejectsBadBody(t *testing.T) {
	t.Parallel()

	svc := &stubBillingService{}
	handler := CreateSale(svc, nil)

	cases := []string{
		`{"items":[]}`,
		`{"items":[{"sku":"","quantity":1}]}`,
		`{"items":[{"sku":"X","quantity":0}]}`,
		`{"items":[{"sku":"X","quantity":1}],"discount_percent":101}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.Code)
		}
	}
}

func TestCreateSaleControllerMapsStockError(t *testing.T) {
	t.Parallel()

	svc := &stubBillingService{
		err: pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for Basmati Rice"),
	}
	handler := CreateSale(svc, nil)

	body := `{"items":[{"sku":"RICE-1KG","quantity":99}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeInsufficientStock) {
		t.Fatalf("unexpected code: %s", envelope.Error.Code)
	}
}
