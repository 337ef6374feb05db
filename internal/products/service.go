package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/db"
	"github.com/aksps/billwise-backend/pkg/db/models"
	"github.com/aksps/billwise-backend/pkg/enums"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
)

// Service manages the product catalog. Stock deductions do not go through
// here; they are owned by the inventory ledger inside sale transactions.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListBelowMinStock(ctx context.Context) ([]models.Product, error)
}

// CreateInput carries the fields accepted when registering a product.
type CreateInput struct {
	SKU           string
	Name          string
	SellingPrice  decimal.Decimal
	UnitType      string
	BaseUnit      string
	CurrentStock  int
	MinStockLevel int
}

// UpdateInput carries the mutable catalog fields. Stock is intentionally
// absent; restocking is a separate concern from catalog edits.
type UpdateInput struct {
	Name          *string
	SellingPrice  *decimal.Decimal
	MinStockLevel *int
}

type service struct {
	repo Repository
}

// NewService builds the product catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product sku required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if !input.SellingPrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price must be positive")
	}
	if input.CurrentStock < 0 || input.MinStockLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
	}

	unitType, err := enums.ParseUnitType(strings.ToUpper(strings.TrimSpace(input.UnitType)))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	baseUnit := strings.ToLower(strings.TrimSpace(input.BaseUnit))
	if !unitType.AllowsBaseUnit(baseUnit) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("base unit %q is not valid for unit type %s (allowed: %s)",
				baseUnit, unitType, strings.Join(unitType.BaseUnits(), ", ")))
	}

	product := &models.Product{
		SKU:                     sku,
		Name:                    name,
		SellingPricePerBaseUnit: input.SellingPrice.Round(2),
		UnitType:                unitType,
		BaseUnit:                baseUnit,
		CurrentStock:            input.CurrentStock,
		MinStockLevel:           input.MinStockLevel,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "products_sku_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err,
				fmt.Sprintf("sku %s already exists", sku))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		product.Name = name
	}
	if input.SellingPrice != nil {
		if !input.SellingPrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price must be positive")
		}
		product.SellingPricePerBaseUnit = input.SellingPrice.Round(2)
	}
	if input.MinStockLevel != nil {
		if *input.MinStockLevel < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min stock level cannot be negative")
		}
		product.MinStockLevel = *input.MinStockLevel
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product sku required")
	}
	product, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]string{"sku": sku})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return records, nil
}

func (s *service) ListBelowMinStock(ctx context.Context) ([]models.Product, error) {
	records, err := s.repo.ListBelowMinStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list low stock products")
	}
	return records, nil
}
