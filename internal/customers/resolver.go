package customers

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/db"
	"github.com/aksps/billwise-backend/pkg/db/models"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
)

// DefaultName is assigned when a sale supplies a contact number without a name.
const DefaultName = "Anonymous"

// Resolve returns the customer for the given contact number, creating one
// inside the caller's transaction when none exists. A blank contact number
// means an anonymous sale and resolves to nil. When a concurrent transaction
// creates the same contact first, the unique violation is absorbed by one
// re-lookup before any error surfaces.
func Resolve(ctx context.Context, tx *gorm.DB, contactNumber, name string) (*models.Customer, error) {
	contactNumber = strings.TrimSpace(contactNumber)
	if contactNumber == "" {
		return nil, nil
	}

	repo := NewRepository(tx)
	existing, err := repo.FindByContactNumber(ctx, contactNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer by contact number")
	}
	if existing != nil {
		return existing, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	created, err := repo.Create(ctx, &models.Customer{
		Name:          name,
		ContactNumber: &contactNumber,
	})
	if err == nil {
		return created, nil
	}
	if !db.IsUniqueViolation(err, "customers_contact_number_key") {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
	}

	// Lost the insert race; the winner's row must be visible now.
	existing, lookupErr := repo.FindByContactNumber(ctx, contactNumber)
	if lookupErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, lookupErr, "re-resolve customer after conflict")
	}
	if existing == nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "customer creation conflicted")
	}
	return existing, nil
}
