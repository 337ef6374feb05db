package inventory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/db/models"
	"github.com/aksps/billwise-backend/pkg/enums"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
)

func TestReserveDeductsStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	seedProduct(t, db, "RICE-1KG", "Basmati Rice", "120.00", 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		first, err := Reserve(ctx, tx, "RICE-1KG", 3)
		if err != nil {
			return err
		}
		if !first.UnitPrice.Equal(decimal.RequireFromString("120.00")) {
			t.Fatalf("unexpected unit price: %s", first.UnitPrice)
		}
		if first.Product.Name != "Basmati Rice" {
			t.Fatalf("unexpected product snapshot: %+v", first.Product)
		}

		second, err := Reserve(ctx, tx, "RICE-1KG", 7)
		if err != nil {
			return err
		}
		if second.Product.SKU != "RICE-1KG" {
			t.Fatalf("unexpected product snapshot: %+v", second.Product)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("reserve transaction: %v", err)
	}

	var product models.Product
	if err := db.First(&product, "sku = ?", "RICE-1KG").Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if product.CurrentStock != 0 {
		t.Fatalf("expected stock 0, got %d", product.CurrentStock)
	}
}

func TestReserveRejectsOversell(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	seedProduct(t, db, "OIL-1L", "Sunflower Oil", "180.00", 2)

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := Reserve(ctx, tx, "OIL-1L", 2); err != nil {
			return err
		}
		_, err := Reserve(ctx, tx, "OIL-1L", 1)
		if err == nil {
			t.Fatal("expected insufficient stock error")
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
			t.Fatalf("unexpected error: %v", err)
		}
		return errors.New("force rollback")
	})
	if err == nil {
		t.Fatal("expected forced rollback error")
	}

	var product models.Product
	if err := db.First(&product, "sku = ?", "OIL-1L").Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if product.CurrentStock != 2 {
		t.Fatalf("rollback should restore stock, got %d", product.CurrentStock)
	}
}

func TestReserveUnknownSKU(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	_, err := Reserve(context.Background(), db, "NOPE-0", 1)
	if err == nil {
		t.Fatal("expected not found error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReserveInvalidQty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedProduct(t, db, "TEA-250G", "Assam Tea", "95.00", 5)

	for _, qty := range []int{0, -4} {
		_, err := Reserve(context.Background(), db, "TEA-250G", qty)
		if err == nil {
			t.Fatalf("expected validation error for qty %d", qty)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("unexpected error for qty %d: %v", qty, err)
		}
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate products: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku, name, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:                     sku,
		Name:                    name,
		SellingPricePerBaseUnit: decimal.RequireFromString(price),
		UnitType:                enums.UnitTypeWeight,
		BaseUnit:                "kg",
		CurrentStock:            stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestReserveConcurrentNeverOversells(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	// one connection so sqlite serializes the transactions; the goroutines
	// still race through the guarded update at the application layer
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	seedProduct(t, db, "RICE-1KG", "Basmati Rice", "120.00", 10)

	const workers = 8
	const qty = 3
	var successes int32
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Transaction(func(tx *gorm.DB) error {
				_, err := Reserve(ctx, tx, "RICE-1KG", qty)
				return err
			})
			if err == nil {
				atomic.AddInt32(&successes, 1)
				return
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected reservation error: %v", err)
	}

	if got := atomic.LoadInt32(&successes); got != 3 {
		t.Fatalf("expected exactly 3 reservations of %d to succeed from stock 10, got %d", qty, got)
	}

	var product models.Product
	if err := db.First(&product, "sku = ?", "RICE-1KG").Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if product.CurrentStock != 10-3*qty {
		t.Fatalf("expected stock %d, got %d", 10-3*qty, product.CurrentStock)
	}
	if product.CurrentStock < 0 {
		t.Fatalf("stock went negative: %d", product.CurrentStock)
	}
}
