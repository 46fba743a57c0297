package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is a supplier on the accounts-payable side.
type Vendor struct {
	VendorID     string `json:"vendorID"` // Primary key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	TaxID        string `json:"taxID"`
	PaymentTerms string `json:"paymentTerms"` // e.g. "Net 30"
	Currency     string `json:"currency"`
	AuditFields
}

// BillStatus indicates where a vendor bill sits in its approval lifecycle.
type BillStatus string

const (
	BillDraft    BillStatus = "DRAFT"
	BillApproved BillStatus = "APPROVED"
	BillPaid     BillStatus = "PAID"
	BillVoid     BillStatus = "VOID"
)

// Bill is the vendor-side sub-ledger document. It carries the same one-to-one
// journal entry link as Invoice, but no posting service exists for bills yet;
// the entity is tracked for payable visibility only.
type Bill struct {
	BillID      string          `json:"billID"`   // Primary key (UUID)
	VendorID    string          `json:"vendorID"` // FK -> Vendor
	BillNumber  string          `json:"billNumber"`
	IssueDate   time.Time       `json:"issueDate"`
	DueDate     time.Time       `json:"dueDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      BillStatus      `json:"status"`

	// Reserved for a future bill posting service.
	JournalEntryID *string `json:"journalEntryID"`
	AuditFields
}
