package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
// DRAFT is the initial state; POSTED and CANCELED are terminal.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Canceled EntryStatus = "CANCELED"
)

var (
	// ErrItemBothSides is returned for a journal item carrying both a debit
	// and a credit amount. A line is one side or the other, never both.
	ErrItemBothSides = errors.New("journal item cannot have both debit and credit")

	// ErrItemNegativeAmount is returned for a journal item with a negative
	// debit or credit amount.
	ErrItemNegativeAmount = errors.New("journal item amounts must not be negative")

	// ErrUnbalancedEntry is returned when posting an entry whose total debits
	// do not equal total credits under exact decimal comparison.
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")
)

// JournalEntry is a packet of debit and credit lines recording one financial
// event. An entry may only be posted when its items balance exactly
// (sum of debits == sum of credits, exact decimal comparison).
type JournalEntry struct {
	EntryID     string      `json:"entryID"` // Primary key (UUID)
	Date        time.Time   `json:"date"`    // Date the event occurred
	Description string      `json:"description"`
	Reference   string      `json:"reference"` // External ref, e.g. "INV-101"
	Status      EntryStatus `json:"status"`
	PostedAt    *time.Time  `json:"postedAt"` // Set on transition to POSTED

	// Traceability links to the practice-management side. Nullable.
	ClientID     *string `json:"clientID"`
	EngagementID *string `json:"engagementID"`

	Items []JournalItem `json:"items,omitempty"`
	AuditFields
}

// TotalDebits sums the debit side of all items.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Debit)
	}
	return total
}

// TotalCredits sums the credit side of all items.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Credit)
	}
	return total
}

// IsBalanced reports whether debits equal credits exactly.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Equal(e.TotalCredits())
}

// Mutable reports whether the entry may still be edited. Only drafts are
// mutable; POSTED and CANCELED entries are frozen.
func (e *JournalEntry) Mutable() bool {
	return e.Status == Draft
}

// JournalItem is a single line within a journal entry, affecting one account.
// Exactly one of Debit/Credit may be nonzero; a zero/zero line is permitted
// as a degenerate no-op.
type JournalItem struct {
	ItemID      string          `json:"itemID"`      // Primary key (UUID)
	EntryID     string          `json:"entryID"`     // FK -> JournalEntry
	LineNo      int             `json:"lineNo"`      // 1-based position within the entry
	AccountCode string          `json:"accountCode"` // FK -> Account.Code
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}

// Validate checks the per-line invariants: non-negative amounts and at most
// one nonzero side.
func (i *JournalItem) Validate() error {
	if i.Debit.IsNegative() || i.Credit.IsNegative() {
		return ErrItemNegativeAmount
	}
	if i.Debit.IsPositive() && i.Credit.IsPositive() {
		return ErrItemBothSides
	}
	return nil
}
