package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductSalesMonth is the aggregated monthly sales row produced by the
// cron worker from invoice items. Month is the first day of the month (UTC).
type ProductSalesMonth struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:product_sales_months_product_month_key"`
	Month      time.Time       `gorm:"column:month;not null;uniqueIndex:product_sales_months_product_month_key"`
	UnitsSold  int             `gorm:"column:units_sold;not null"`
	Revenue    decimal.Decimal `gorm:"column:revenue;type:numeric(14,2);not null"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	InsertedAt time.Time       `gorm:"column:inserted_at;autoCreateTime"`
}

func (p *ProductSalesMonth) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
