package models

import "time"

// Client is a row in the clients table. tax_id_number carries a UNIQUE
// constraint.
type Client struct {
	ClientID        string     `db:"client_id"`
	Name            string     `db:"name"`
	TaxIDNumber     string     `db:"tax_id_number"`
	EntityType      string     `db:"entity_type"`
	Industry        string     `db:"industry"`
	AssignedPartner *string    `db:"assigned_partner"`
	FiscalYearEnd   *time.Time `db:"fiscal_year_end"`
	RiskRating      string     `db:"risk_rating"`
	BillingAddress  string     `db:"billing_address"`
	PrimaryCurrency string     `db:"primary_currency"`
	IsActive        bool       `db:"is_active"`
	AuditFields
}
