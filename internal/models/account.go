package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is a row in the accounts table. The code is the primary key;
// ParentCode is a nullable self-reference with SET NULL on parent deletion.
type Account struct {
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Description string      `db:"description"`
	ParentCode  *string     `db:"parent_code"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}
