package models

// InvoiceCounter backs sequential invoice numbering. A single row is
// incremented inside the sale transaction; the row lock taken by the UPDATE
// serializes concurrent sales, and a rollback releases the allocated value
// with the rest of the transaction.
type InvoiceCounter struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value int64  `gorm:"column:value;not null;default:0"`
}
