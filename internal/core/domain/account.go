package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NormalDebit reports whether the account type carries a debit normal balance,
// i.e. debits increase it. ASSET and EXPENSE are debit-normal; LIABILITY,
// EQUITY and INCOME are credit-normal.
func (t AccountType) NormalDebit() bool {
	return t == Asset || t == Expense
}

// Account is a node in the chart of accounts. The code is the stable,
// user-facing identifier (e.g. "1200" for Accounts Receivable) and is unique
// across the chart. Changing AccountType once journal items reference the
// account corrupts statement sign logic, so the type is treated as immutable
// after creation.
type Account struct {
	Code        string      `json:"code"`        // Primary key, e.g. "1200"
	Name        string      `json:"name"`        // Display name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"` // Optional free text
	ParentCode  *string     `json:"parentCode"`  // Nullable self-reference for hierarchy
	IsActive    bool        `json:"isActive"`
	AuditFields
}
