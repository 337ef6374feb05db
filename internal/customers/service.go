package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/db"
	"github.com/aksps/billwise-backend/pkg/db/models"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
)

// Service exposes the customer directory used by checkout prefill and admin
// screens. Lazy creation during a sale goes through Resolve instead.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByContactNumber(ctx context.Context, contactNumber string) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

// CreateInput carries the fields accepted when registering a customer.
type CreateInput struct {
	Name          string
	ContactNumber string
	Email         string
	GSTNumber     string
}

type service struct {
	repo Repository
}

// NewService builds the customer service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}

	customer := &models.Customer{Name: name}
	if contact := strings.TrimSpace(input.ContactNumber); contact != "" {
		customer.ContactNumber = &contact
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		customer.Email = &email
	}
	if gst := strings.TrimSpace(input.GSTNumber); gst != "" {
		customer.GSTNumber = &gst
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		if db.IsUniqueViolation(err, "customers_contact_number_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "contact number already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
	}
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}
	return customer, nil
}

func (s *service) GetByContactNumber(ctx context.Context, contactNumber string) (*models.Customer, error) {
	contactNumber = strings.TrimSpace(contactNumber)
	if contactNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact number required")
	}
	customer, err := s.repo.FindByContactNumber(ctx, contactNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer")
	}
	if customer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return customer, nil
}

func (s *service) List(ctx context.Context) ([]models.Customer, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}
	return records, nil
}
