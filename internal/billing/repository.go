package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/db/models"
)

// CounterName identifies the row backing sequential invoice numbers.
const CounterName = "invoice_number"

// Repository exposes invoice persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]models.Invoice, error)
	NextInvoiceNumber(ctx context.Context) (string, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an invoice repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) FindByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Customer").
		First(&invoice, "invoice_number = ?", invoiceNumber).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]models.Invoice, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var records []models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Customer").
		Order("invoice_date DESC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// NextInvoiceNumber increments the counter row and returns the formatted
// number. The UPDATE takes the row lock, so concurrent sales allocate in
// strict sequence and a rolled back sale releases its number with the rest
// of its transaction.
func (r *repository) NextInvoiceNumber(ctx context.Context) (string, error) {
	tx := r.db.WithContext(ctx)

	res := tx.Model(&models.InvoiceCounter{}).
		Where("name = ?", CounterName).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// First allocation on a fresh database seeds the row.
		if err := tx.Create(&models.InvoiceCounter{Name: CounterName, Value: 1}).Error; err != nil {
			return "", err
		}
		return "INV-1", nil
	}

	var counter models.InvoiceCounter
	if err := tx.First(&counter, "name = ?", CounterName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("invoice counter row missing after update")
		}
		return "", err
	}
	return fmt.Sprintf("INV-%d", counter.Value), nil
}
