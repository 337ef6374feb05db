package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aksps/billwise-backend/pkg/db/models"
)

// DefaultLookback bounds how far back a cycle rescans invoices.
const DefaultLookback = 30 * 24 * time.Hour

// Aggregator folds invoice items into per-product monthly sales rows.
type Aggregator struct {
	db       *gorm.DB
	lookback time.Duration
	now      func() time.Time
}

// NewAggregator builds an aggregator over the provided GORM DB.
func NewAggregator(db *gorm.DB, lookback time.Duration) (*Aggregator, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Aggregator{db: db, lookback: lookback, now: time.Now}, nil
}

type soldLine struct {
	ProductID    uuid.UUID
	QuantitySold int
	LineTotal    decimal.Decimal
	InvoiceDate  time.Time
}

type monthKey struct {
	productID uuid.UUID
	month     time.Time
}

// Run recomputes every month touched by the lookback window and overwrites
// the matching product_sales_months rows. The window is widened to whole
// months so a recomputed row never loses sales from before the window start.
// Returns the number of rows written.
func (a *Aggregator) Run(ctx context.Context) (int, error) {
	now := a.now().UTC()
	windowStart := monthStart(now.Add(-a.lookback))

	var lines []soldLine
	err := a.db.WithContext(ctx).
		Model(&models.InvoiceItem{}).
		Select("invoice_items.product_id, invoice_items.quantity_sold, invoice_items.line_total, invoices.invoice_date").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.invoice_date >= ?", windowStart).
		Scan(&lines).Error
	if err != nil {
		return 0, fmt.Errorf("scan invoice items: %w", err)
	}

	buckets := make(map[monthKey]*models.ProductSalesMonth)
	for _, line := range lines {
		key := monthKey{productID: line.ProductID, month: monthStart(line.InvoiceDate)}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.ProductSalesMonth{
				ProductID: key.productID,
				Month:     key.month,
				Revenue:   decimal.Zero,
			}
			buckets[key] = bucket
		}
		bucket.UnitsSold += line.QuantitySold
		bucket.Revenue = bucket.Revenue.Add(line.LineTotal)
	}

	var errs error
	written := 0
	for _, bucket := range buckets {
		upsert := a.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "month"}},
			DoUpdates: clause.Assignments(map[string]any{
				"units_sold": bucket.UnitsSold,
				"revenue":    bucket.Revenue,
				"updated_at": now,
			}),
		}).Create(bucket)
		if upsert.Error != nil {
			errs = multierr.Append(errs, fmt.Errorf("upsert product %s month %s: %w",
				bucket.ProductID, bucket.Month.Format("2006-01"), upsert.Error))
			continue
		}
		written++
	}
	return written, errs
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
