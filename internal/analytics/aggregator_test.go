package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/db/models"
	"github.com/aksps/billwise-backend/pkg/enums"
)

func TestAggregatorGroupsByProductAndMonth(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	rice := seedProduct(t, db, "RICE-1KG")
	oil := seedProduct(t, db, "OIL-1L")

	// Two March invoices and one February invoice inside the window.
	seedInvoice(t, db, now.AddDate(0, 0, -1), []models.InvoiceItem{
		{ProductID: rice, QuantitySold: 3, LineTotal: decimal.RequireFromString("150.00")},
		{ProductID: oil, QuantitySold: 1, LineTotal: decimal.RequireFromString("180.00")},
	})
	seedInvoice(t, db, now.AddDate(0, 0, -5), []models.InvoiceItem{
		{ProductID: rice, QuantitySold: 2, LineTotal: decimal.RequireFromString("100.00")},
	})
	seedInvoice(t, db, now.AddDate(0, 0, -20), []models.InvoiceItem{
		{ProductID: rice, QuantitySold: 4, LineTotal: decimal.RequireFromString("200.00")},
	})

	aggregator := newTestAggregator(t, db, now)
	written, err := aggregator.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if written != 3 {
		t.Fatalf("expected 3 rows written, got %d", written)
	}

	assertMonthRow(t, db, rice, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), 5, "250")
	assertMonthRow(t, db, rice, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), 4, "200")
	assertMonthRow(t, db, oil, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), 1, "180")
}

func TestAggregatorRunIsIdempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	rice := seedProduct(t, db, "RICE-REPEAT")
	seedInvoice(t, db, now.AddDate(0, 0, -2), []models.InvoiceItem{
		{ProductID: rice, QuantitySold: 2, LineTotal: decimal.RequireFromString("100.00")},
	})

	aggregator := newTestAggregator(t, db, now)
	if _, err := aggregator.Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := aggregator.Run(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var count int64
	if err := db.Model(&models.ProductSalesMonth{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("reruns must not duplicate rows, found %d", count)
	}
	assertMonthRow(t, db, rice, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), 2, "100")
}

func TestAggregatorPicksUpNewSales(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	rice := seedProduct(t, db, "RICE-GROW")
	seedInvoice(t, db, now.AddDate(0, 0, -2), []models.InvoiceItem{
		{ProductID: rice, QuantitySold: 2, LineTotal: decimal.RequireFromString("100.00")},
	})

	aggregator := newTestAggregator(t, db, now)
	if _, err := aggregator.Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}

	seedInvoice(t, db, now.AddDate(0, 0, -1), []models.InvoiceItem{
		{ProductID: rice, QuantitySold: 3, LineTotal: decimal.RequireFromString("150.00")},
	})
	if _, err := aggregator.Run(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	assertMonthRow(t, db, rice, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), 5, "250")
}

func TestAggregatorIgnoresSalesOutsideWindow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	rice := seedProduct(t, db, "RICE-OLD")
	seedInvoice(t, db, now.AddDate(0, -6, 0), []models.InvoiceItem{
		{ProductID: rice, QuantitySold: 9, LineTotal: decimal.RequireFromString("450.00")},
	})

	aggregator := newTestAggregator(t, db, now)
	written, err := aggregator.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if written != 0 {
		t.Fatalf("expected no rows for stale sales, wrote %d", written)
	}
}

func assertMonthRow(t *testing.T, db *gorm.DB, productID uuid.UUID, month time.Time, units int, revenue string) {
	t.Helper()
	var row models.ProductSalesMonth
	err := db.First(&row, "product_id = ? AND month = ?", productID, month).Error
	if err != nil {
		t.Fatalf("load month row for %s %s: %v", productID, month.Format("2006-01"), err)
	}
	if row.UnitsSold != units {
		t.Fatalf("expected %d units, got %d", units, row.UnitsSold)
	}
	if !row.Revenue.Equal(decimal.RequireFromString(revenue)) {
		t.Fatalf("expected revenue %s, got %s", revenue, row.Revenue)
	}
}

func newTestAggregator(t *testing.T, db *gorm.DB, now time.Time) *Aggregator {
	t.Helper()
	aggregator, err := NewAggregator(db, DefaultLookback)
	if err != nil {
		t.Fatalf("new aggregator: %v", err)
	}
	aggregator.now = func() time.Time { return now }
	return aggregator
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:analytics_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.ProductSalesMonth{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku string) uuid.UUID {
	t.Helper()
	product := &models.Product{
		SKU:                     sku,
		Name:                    sku,
		SellingPricePerBaseUnit: decimal.RequireFromString("50.00"),
		UnitType:                enums.UnitTypeWeight,
		BaseUnit:                "kg",
		CurrentStock:            100,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product.ID
}

func seedInvoice(t *testing.T, db *gorm.DB, date time.Time, items []models.InvoiceItem) {
	t.Helper()
	for i := range items {
		items[i].UnitPriceAtSale = decimal.RequireFromString("50.00")
		items[i].ItemDiscount = decimal.Zero
		items[i].Position = i
	}
	invoice := &models.Invoice{
		InvoiceNumber: "INV-TEST-" + uuid.NewString(),
		InvoiceDate:   date,
		Items:         items,
		SubTotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalTax:      decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
}
