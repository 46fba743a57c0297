package mapping

import (
	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/models"
)

// ToModelClientDocument converts a domain ClientDocument to a model ClientDocument
func ToModelClientDocument(d domain.ClientDocument) models.ClientDocument {
	return models.ClientDocument{
		DocumentID:   d.DocumentID,
		ClientID:     d.ClientID,
		EngagementID: d.EngagementID,
		UploadedBy:   d.UploadedBy,
		StorageKey:   d.StorageKey,
		Description:  d.Description,
		Category:     string(d.Category),
		IsVerified:   d.IsVerified,
		UploadedAt:   d.UploadedAt,
	}
}

// ToDomainClientDocument converts a model ClientDocument to a domain ClientDocument
func ToDomainClientDocument(m models.ClientDocument) domain.ClientDocument {
	return domain.ClientDocument{
		DocumentID:   m.DocumentID,
		ClientID:     m.ClientID,
		EngagementID: m.EngagementID,
		UploadedBy:   m.UploadedBy,
		StorageKey:   m.StorageKey,
		Description:  m.Description,
		Category:     domain.DocumentCategory(m.Category),
		IsVerified:   m.IsVerified,
		UploadedAt:   m.UploadedAt,
	}
}

// ToDomainClientDocumentSlice converts a slice of model ClientDocuments to domain ClientDocuments
func ToDomainClientDocumentSlice(ms []models.ClientDocument) []domain.ClientDocument {
	ds := make([]domain.ClientDocument, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClientDocument(m)
	}
	return ds
}

// ToModelPBCRequest converts a domain PBCRequest to a model PBCRequest
func ToModelPBCRequest(d domain.PBCRequest) models.PBCRequest {
	return models.PBCRequest{
		RequestID:     d.RequestID,
		EngagementID:  d.EngagementID,
		Title:         d.Title,
		Description:   d.Description,
		Status:        string(d.Status),
		AttachmentKey: d.AttachmentKey,
		RequestedAt:   d.RequestedAt,
	}
}

// ToDomainPBCRequest converts a model PBCRequest to a domain PBCRequest
func ToDomainPBCRequest(m models.PBCRequest) domain.PBCRequest {
	return domain.PBCRequest{
		RequestID:     m.RequestID,
		EngagementID:  m.EngagementID,
		Title:         m.Title,
		Description:   m.Description,
		Status:        domain.PBCStatus(m.Status),
		AttachmentKey: m.AttachmentKey,
		RequestedAt:   m.RequestedAt,
	}
}

// ToDomainPBCRequestSlice converts a slice of model PBCRequests to domain PBCRequests
func ToDomainPBCRequestSlice(ms []models.PBCRequest) []domain.PBCRequest {
	ds := make([]domain.PBCRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPBCRequest(m)
	}
	return ds
}
