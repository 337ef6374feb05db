package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is created lazily on the first sale that references an unknown
// contact number. ContactNumber is nullable so anonymous invoices never touch
// this table, and unique so concurrent first sales race on the constraint
// instead of on an application-level existence check.
type Customer struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	ContactNumber *string   `gorm:"column:contact_number;uniqueIndex:customers_contact_number_key"`
	Email         *string   `gorm:"column:email"`
	GSTNumber     *string   `gorm:"column:gst_number"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
