package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceItem snapshots one sold line. UnitPriceAtSale and the product name/sku
// are copied at sale time so later catalog edits never rewrite history.
// ItemDiscount is persisted but always zero today; it is an extension point,
// not an input to the totals.
type InvoiceItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID       uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName     string          `gorm:"column:product_name;not null"`
	ProductSKU      string          `gorm:"column:product_sku;not null"`
	QuantitySold    int             `gorm:"column:quantity_sold;not null"`
	UnitPriceAtSale decimal.Decimal `gorm:"column:unit_price_at_sale;type:numeric(12,2);not null"`
	LineTotal       decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null"`
	ItemDiscount    decimal.Decimal `gorm:"column:item_discount;type:numeric(12,2);not null;default:0"`
	Position        int             `gorm:"column:position;not null"`
}

func (i *InvoiceItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
