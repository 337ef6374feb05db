package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aksps/billwise-backend/internal/customers"
	"github.com/aksps/billwise-backend/pkg/db/models"
)

// SaleInput is the request to record a sale.
type SaleInput struct {
	CustomerName    string
	ContactNumber   string
	DiscountPercent decimal.Decimal
	Items           []SaleItemInput
}

// SaleItemInput identifies one requested line by catalog SKU.
type SaleItemInput struct {
	SKU      string
	Quantity int
}

// SaleSnapshot is the detached view of a persisted invoice. It is built from
// the reloaded row after commit, so later catalog or customer edits never
// show through it.
type SaleSnapshot struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	CustomerName  string          `json:"customer_name"`
	Customer      *SaleCustomer   `json:"customer,omitempty"`
	Lines         []SaleLine      `json:"lines"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// SaleCustomer is the customer slice of a snapshot.
type SaleCustomer struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactNumber *string   `json:"contact_number,omitempty"`
}

// SaleLine is one invoiced line as sold.
type SaleLine struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductSKU      string          `json:"product_sku"`
	QuantitySold    int             `json:"quantity_sold"`
	UnitPriceAtSale decimal.Decimal `json:"unit_price_at_sale"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

func snapshotFromInvoice(invoice *models.Invoice) *SaleSnapshot {
	snapshot := &SaleSnapshot{
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		InvoiceDate:   invoice.InvoiceDate,
		SubTotal:      invoice.SubTotal,
		TotalDiscount: invoice.TotalDiscount,
		TotalTax:      invoice.TotalTax,
		GrandTotal:    invoice.GrandTotal,
		Lines:         make([]SaleLine, 0, len(invoice.Items)),
	}
	if invoice.Customer != nil {
		snapshot.CustomerName = invoice.Customer.Name
		snapshot.Customer = &SaleCustomer{
			ID:            invoice.Customer.ID,
			Name:          invoice.Customer.Name,
			ContactNumber: invoice.Customer.ContactNumber,
		}
	} else {
		snapshot.CustomerName = customers.DefaultName
	}
	for _, item := range invoice.Items {
		snapshot.Lines = append(snapshot.Lines, SaleLine{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductSKU:      item.ProductSKU,
			QuantitySold:    item.QuantitySold,
			UnitPriceAtSale: item.UnitPriceAtSale,
			LineTotal:       item.LineTotal,
		})
	}
	return snapshot
}
