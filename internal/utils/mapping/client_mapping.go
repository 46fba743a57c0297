package mapping

import (
	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:        d.ClientID,
		Name:            d.Name,
		TaxIDNumber:     d.TaxIDNumber,
		EntityType:      string(d.EntityType),
		Industry:        d.Industry,
		AssignedPartner: d.AssignedPartner,
		FiscalYearEnd:   d.FiscalYearEnd,
		RiskRating:      string(d.RiskRating),
		BillingAddress:  d.BillingAddress,
		PrimaryCurrency: d.PrimaryCurrency,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:        m.ClientID,
		Name:            m.Name,
		TaxIDNumber:     m.TaxIDNumber,
		EntityType:      domain.EntityType(m.EntityType),
		Industry:        m.Industry,
		AssignedPartner: m.AssignedPartner,
		FiscalYearEnd:   m.FiscalYearEnd,
		RiskRating:      domain.RiskRating(m.RiskRating),
		BillingAddress:  m.BillingAddress,
		PrimaryCurrency: m.PrimaryCurrency,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
