package domain

import "time"

// EntityType classifies the legal structure of a client.
type EntityType string

const (
	EntityIndividual  EntityType = "INDIVIDUAL"
	EntityLLC         EntityType = "LLC"
	EntityCorp        EntityType = "CORP"
	EntityPartnership EntityType = "PARTNERSHIP"
	EntityNGO         EntityType = "NGO"
)

// RiskRating is the firm's assessed engagement risk for a client.
type RiskRating string

const (
	RiskLow    RiskRating = "LOW"
	RiskMedium RiskRating = "MED"
	RiskHigh   RiskRating = "HIGH"
)

// Client is a firm client under management.
type Client struct {
	ClientID        string     `json:"clientID"` // Primary key (UUID)
	Name            string     `json:"name"`
	TaxIDNumber     string     `json:"taxIDNumber"` // Unique
	EntityType      EntityType `json:"entityType"`
	Industry        string     `json:"industry"`
	AssignedPartner *string    `json:"assignedPartner"` // UserID reference
	FiscalYearEnd   *time.Time `json:"fiscalYearEnd"`
	RiskRating      RiskRating `json:"riskRating"`
	BillingAddress  string     `json:"billingAddress"`
	PrimaryCurrency string     `json:"primaryCurrency"`
	IsActive        bool       `json:"isActive"`
	AuditFields
}

// ClientContact is a named contact person at a client.
type ClientContact struct {
	ContactID string `json:"contactID"` // Primary key (UUID)
	ClientID  string `json:"clientID"`  // FK -> Client
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"isPrimary"`
}
