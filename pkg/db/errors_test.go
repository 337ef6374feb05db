package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "customers_contact_number_key"}
	if !IsUniqueViolation(pgErr, "") {
		t.Fatal("expected 23505 to be treated as unique violation")
	}
	if !IsUniqueViolation(pgErr, "customers_contact_number_key") {
		t.Fatal("expected matching constraint to be accepted")
	}
	if IsUniqueViolation(pgErr, "other_constraint") {
		t.Fatal("expected mismatched constraint to be rejected")
	}

	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violations are not unique violations")
	}

	sqliteErr := errors.New("UNIQUE constraint failed: customers.contact_number")
	if !IsUniqueViolation(sqliteErr, "") {
		t.Fatal("expected sqlite unique failure to match")
	}

	if IsUniqueViolation(nil, "") {
		t.Fatal("nil is not a unique violation")
	}
}
