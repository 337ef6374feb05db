package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/internal/customers"
	"github.com/aksps/billwise-backend/internal/inventory"
	"github.com/aksps/billwise-backend/internal/pricing"
	"github.com/aksps/billwise-backend/pkg/db/models"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type reserver interface {
	Reserve(ctx context.Context, tx *gorm.DB, sku string, qty int) (*inventory.ReservationResult, error)
}

type customerResolver interface {
	Resolve(ctx context.Context, tx *gorm.DB, contactNumber, name string) (*models.Customer, error)
}

type ledgerReserver struct{}

func (ledgerReserver) Reserve(ctx context.Context, tx *gorm.DB, sku string, qty int) (*inventory.ReservationResult, error) {
	return inventory.Reserve(ctx, tx, sku, qty)
}

type lazyResolver struct{}

func (lazyResolver) Resolve(ctx context.Context, tx *gorm.DB, contactNumber, name string) (*models.Customer, error) {
	return customers.Resolve(ctx, tx, contactNumber, name)
}

// Service executes sale orchestration and invoice reads.
type Service interface {
	CreateSale(ctx context.Context, input SaleInput) (*SaleSnapshot, error)
	GetInvoiceByID(ctx context.Context, id uuid.UUID) (*SaleSnapshot, error)
	GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*SaleSnapshot, error)
	ListInvoices(ctx context.Context, limit, offset int) ([]SaleSnapshot, error)
}

type service struct {
	tx       txRunner
	repo     Repository
	reserve  reserver
	resolver customerResolver
	now      func() time.Time
}

// NewService builds the billing service.
func NewService(tx txRunner, repo Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		reserve:  ledgerReserver{},
		resolver: lazyResolver{},
		now:      time.Now,
	}, nil
}

// CreateSale records a sale as one atomic transaction: resolve the customer,
// reserve stock per line in request order, price the invoice, allocate the
// next invoice number, persist. Any failure rolls back every step.
func (s *service) CreateSale(ctx context.Context, input SaleInput) (*SaleSnapshot, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale must contain at least one item")
	}
	for i, item := range input.Items {
		if item.SKU == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d missing sku", i))
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d quantity must be positive", i))
		}
	}

	var invoiceID uuid.UUID
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := s.resolver.Resolve(ctx, tx, input.ContactNumber, input.CustomerName)
		if err != nil {
			return err
		}

		items := make([]models.InvoiceItem, 0, len(input.Items))
		lines := make([]pricing.Line, 0, len(input.Items))
		for i, requested := range input.Items {
			reserved, err := s.reserve.Reserve(ctx, tx, requested.SKU, requested.Quantity)
			if err != nil {
				return err
			}
			lineTotal := pricing.LineTotal(requested.Quantity, reserved.UnitPrice)
			items = append(items, models.InvoiceItem{
				ProductID:       reserved.Product.ID,
				ProductName:     reserved.Product.Name,
				ProductSKU:      reserved.Product.SKU,
				QuantitySold:    requested.Quantity,
				UnitPriceAtSale: reserved.UnitPrice,
				LineTotal:       lineTotal,
				ItemDiscount:    decimal.Zero,
				Position:        i,
			})
			lines = append(lines, pricing.Line{
				Qty:       requested.Quantity,
				UnitPrice: reserved.UnitPrice,
				Total:     lineTotal,
			})
		}

		totals, err := pricing.Compute(lines, input.DiscountPercent)
		if err != nil {
			return err
		}
		rounded := totals.Rounded()

		invoiceNumber, err := repo.NextInvoiceNumber(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocate invoice number")
		}

		invoice := &models.Invoice{
			InvoiceNumber: invoiceNumber,
			InvoiceDate:   s.now().UTC(),
			Items:         items,
			SubTotal:      rounded.SubTotal,
			TotalDiscount: rounded.TotalDiscount,
			TotalTax:      rounded.TotalTax,
			GrandTotal:    rounded.GrandTotal,
		}
		if customer != nil {
			invoice.CustomerID = &customer.ID
		}
		created, err := repo.Create(ctx, invoice)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist invoice")
		}
		invoiceID = created.ID
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sale transaction failed")
	}

	return s.GetInvoiceByID(ctx, invoiceID)
}

func (s *service) GetInvoiceByID(ctx context.Context, id uuid.UUID) (*SaleSnapshot, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice")
	}
	return snapshotFromInvoice(invoice), nil
}

func (s *service) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*SaleSnapshot, error) {
	if invoiceNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice number required")
	}
	invoice, err := s.repo.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice")
	}
	return snapshotFromInvoice(invoice), nil
}

func (s *service) ListInvoices(ctx context.Context, limit, offset int) ([]SaleSnapshot, error) {
	records, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list invoices")
	}
	snapshots := make([]SaleSnapshot, 0, len(records))
	for i := range records {
		snapshots = append(snapshots, *snapshotFromInvoice(&records[i]))
	}
	return snapshots, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
