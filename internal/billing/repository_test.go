package billing

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/db/models"
)

func TestNextInvoiceNumberSeedsAndIncrements(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.NextInvoiceNumber(ctx)
	if err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	if first != "INV-1" {
		t.Fatalf("expected INV-1, got %s", first)
	}

	second, err := repo.NextInvoiceNumber(ctx)
	if err != nil {
		t.Fatalf("second allocation: %v", err)
	}
	if second != "INV-2" {
		t.Fatalf("expected INV-2, got %s", second)
	}
}

func TestNextInvoiceNumberRollbackReleasesValue(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if _, err := repo.NextInvoiceNumber(ctx); err != nil {
		t.Fatalf("seed allocation: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		number, err := repo.WithTx(tx).NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		if number != "INV-2" {
			t.Fatalf("expected INV-2 inside tx, got %s", number)
		}
		return errors.New("abort sale")
	})
	if err == nil {
		t.Fatal("expected forced rollback")
	}

	var counter models.InvoiceCounter
	if err := db.First(&counter, "name = ?", CounterName).Error; err != nil {
		t.Fatalf("load counter: %v", err)
	}
	if counter.Value != 1 {
		t.Fatalf("rollback should release the allocation, counter at %d", counter.Value)
	}

	next, err := repo.NextInvoiceNumber(ctx)
	if err != nil {
		t.Fatalf("post rollback allocation: %v", err)
	}
	if next != "INV-2" {
		t.Fatalf("expected INV-2 after rollback, got %s", next)
	}
}
