package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is the immutable audit record of a completed sale. Items are owned
// exclusively by their invoice: created with it, never updated independently,
// removed with it (CASCADE).
type Invoice struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceNumber string          `gorm:"column:invoice_number;uniqueIndex:invoices_invoice_number_key;not null"`
	InvoiceDate   time.Time       `gorm:"column:invoice_date;not null"`
	CustomerID    *uuid.UUID      `gorm:"column:customer_id;type:uuid"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	SubTotal      decimal.Decimal `gorm:"column:sub_total;type:numeric(12,2);not null"`
	TotalDiscount decimal.Decimal `gorm:"column:total_discount;type:numeric(12,2);not null"`
	TotalTax      decimal.Decimal `gorm:"column:total_tax;type:numeric(12,2);not null"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total;type:numeric(12,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (i *Invoice) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
