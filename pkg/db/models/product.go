package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/enums"
)

// Product is the canonical catalog listing. CurrentStock is the single shared
// mutable resource of the system; it is only decremented through the inventory
// ledger's guarded update inside a sale transaction.
type Product struct {
	ID                      uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SKU                     string          `gorm:"column:sku;uniqueIndex:products_sku_key;not null"`
	Name                    string          `gorm:"column:name;not null"`
	SellingPricePerBaseUnit decimal.Decimal `gorm:"column:selling_price_per_base_unit;type:numeric(12,2);not null"`
	UnitType                enums.UnitType  `gorm:"column:unit_type;type:text;not null"`
	BaseUnit                string          `gorm:"column:base_unit;not null"`
	CurrentStock            int             `gorm:"column:current_stock;not null;default:0"`
	MinStockLevel           int             `gorm:"column:min_stock_level;not null;default:0"`
	CreatedAt               time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
