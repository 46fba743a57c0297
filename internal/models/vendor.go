package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is a row in the vendors table.
type Vendor struct {
	VendorID     string `db:"vendor_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	TaxID        string `db:"tax_id"`
	PaymentTerms string `db:"payment_terms"`
	Currency     string `db:"currency"`
	AuditFields
}

// Bill is a row in the bills table. journal_entry_id mirrors the invoice
// link column but stays NULL until a bill posting path exists.
type Bill struct {
	BillID         string          `db:"bill_id"`
	VendorID       string          `db:"vendor_id"`
	BillNumber     string          `db:"bill_number"`
	IssueDate      time.Time       `db:"issue_date"`
	DueDate        time.Time       `db:"due_date"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	Status         string          `db:"status"`
	JournalEntryID *string         `db:"journal_entry_id"`
	AuditFields
}
