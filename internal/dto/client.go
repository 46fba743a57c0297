package dto

import (
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a new client.
type CreateClientRequest struct {
	Name            string            `json:"name" binding:"required"`
	TaxIDNumber     string            `json:"taxIDNumber" binding:"required"`
	EntityType      domain.EntityType `json:"entityType" binding:"required,oneof=INDIVIDUAL LLC CORP PARTNERSHIP NGO"`
	Industry        string            `json:"industry"`
	AssignedPartner *string           `json:"assignedPartner"`
	FiscalYearEnd   *time.Time        `json:"fiscalYearEnd"`
	RiskRating      domain.RiskRating `json:"riskRating" binding:"omitempty,oneof=LOW MED HIGH"`
	BillingAddress  string            `json:"billingAddress"`
	PrimaryCurrency string            `json:"primaryCurrency"`
}

// UpdateClientRequest defines the updatable fields of a client. Nil fields
// are left unchanged. The tax ID is identity and cannot change.
type UpdateClientRequest struct {
	Name            *string            `json:"name"`
	EntityType      *domain.EntityType `json:"entityType" binding:"omitempty,oneof=INDIVIDUAL LLC CORP PARTNERSHIP NGO"`
	Industry        *string            `json:"industry"`
	AssignedPartner *string            `json:"assignedPartner"`
	FiscalYearEnd   *time.Time         `json:"fiscalYearEnd"`
	RiskRating      *domain.RiskRating `json:"riskRating" binding:"omitempty,oneof=LOW MED HIGH"`
	BillingAddress  *string            `json:"billingAddress"`
	PrimaryCurrency *string            `json:"primaryCurrency"`
	IsActive        *bool              `json:"isActive"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID        string            `json:"clientID"`
	Name            string            `json:"name"`
	TaxIDNumber     string            `json:"taxIDNumber"`
	EntityType      domain.EntityType `json:"entityType"`
	Industry        string            `json:"industry"`
	AssignedPartner *string           `json:"assignedPartner,omitempty"`
	FiscalYearEnd   *time.Time        `json:"fiscalYearEnd,omitempty"`
	RiskRating      domain.RiskRating `json:"riskRating"`
	BillingAddress  string            `json:"billingAddress"`
	PrimaryCurrency string            `json:"primaryCurrency"`
	IsActive        bool              `json:"isActive"`
	CreatedAt       time.Time         `json:"createdAt"`
	CreatedBy       string            `json:"createdBy"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:        c.ClientID,
		Name:            c.Name,
		TaxIDNumber:     c.TaxIDNumber,
		EntityType:      c.EntityType,
		Industry:        c.Industry,
		AssignedPartner: c.AssignedPartner,
		FiscalYearEnd:   c.FiscalYearEnd,
		RiskRating:      c.RiskRating,
		BillingAddress:  c.BillingAddress,
		PrimaryCurrency: c.PrimaryCurrency,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		CreatedBy:       c.CreatedBy,
	}
}

// ToListClientResponse converts a slice of domain.Client to ClientResponse DTOs.
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return res
}
