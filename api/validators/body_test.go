package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
)

type samplePayload struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

func TestDecodeJSONBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"sku":"RICE-1KG","quantity":2}`))
	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.SKU != "RICE-1KG" || payload.Quantity != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"sku":"X","quantity":1,"extra":true}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyValidatesFields(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"sku":"","quantity":0}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, present := details["sku"]; !present {
		t.Fatalf("expected sku detail, got %v", details)
	}
}
