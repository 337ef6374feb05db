package pricing

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
)

// TaxRate is the flat GST rate applied to every sale.
var TaxRate = decimal.NewFromFloat(0.18)

var hundred = decimal.NewFromInt(100)

// Line is one priced invoice line. Total must equal Qty * UnitPrice; the
// calculator trusts its inputs and only sums them.
type Line struct {
	Qty       int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Totals carries the computed amounts for an invoice. Values keep full
// precision; callers round at the persistence boundary with Round2.
type Totals struct {
	SubTotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// LineTotal computes the exact total for a quantity at a unit price.
func LineTotal(qty int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// Compute derives invoice totals from priced lines and an invoice-level
// discount percentage. The discount applies to the subtotal before tax.
func Compute(lines []Line, discountPct decimal.Decimal) (Totals, error) {
	if discountPct.IsNegative() || discountPct.GreaterThan(hundred) {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 0 and 100")
	}

	subTotal := decimal.Zero
	for _, line := range lines {
		subTotal = subTotal.Add(line.Total)
	}

	totalDiscount := subTotal.Mul(discountPct).Div(hundred)
	taxable := subTotal.Sub(totalDiscount)
	totalTax := taxable.Mul(TaxRate)
	grandTotal := taxable.Add(totalTax)

	return Totals{
		SubTotal:      subTotal,
		TotalDiscount: totalDiscount,
		TotalTax:      totalTax,
		GrandTotal:    grandTotal,
	}, nil
}

// Round2 rounds a monetary value half away from zero to two decimal places.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Rounded returns a copy of the totals rounded for persistence.
func (t Totals) Rounded() Totals {
	return Totals{
		SubTotal:      Round2(t.SubTotal),
		TotalDiscount: Round2(t.TotalDiscount),
		TotalTax:      Round2(t.TotalTax),
		GrandTotal:    Round2(t.GrandTotal),
	}
}
