package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aksps/billwise-backend/pkg/db/models"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
)

// ReservationResult reports a successful stock deduction. Product is the row
// as read before the deduction; UnitPrice is the live selling price at the
// moment of reservation and is what invoices must snapshot.
type ReservationResult struct {
	Product   models.Product
	UnitPrice decimal.Decimal
}

// Reserve deducts qty units of the product identified by sku inside the
// caller's transaction. The deduction is a single guarded UPDATE so two
// concurrent sales serialize on the product row; there is no read-then-write
// window in which both could observe the same stock level.
func Reserve(ctx context.Context, tx *gorm.DB, sku string, qty int) (*ReservationResult, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reservation requires an open transaction")
	}
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product sku required")
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity for %s must be positive", sku))
	}

	var product models.Product
	if err := tx.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]string{"sku": sku})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product for reservation")
	}

	res := tx.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND current_stock >= ?", product.ID, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "deduct stock")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("insufficient stock for %s", product.Name)).
			WithDetails(map[string]any{
				"sku":       product.SKU,
				"requested": qty,
			})
	}

	return &ReservationResult{
		Product:   product,
		UnitPrice: product.SellingPricePerBaseUnit,
	}, nil
}
