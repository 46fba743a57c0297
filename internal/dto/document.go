package dto

import (
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
)

// RecordDocumentRequest defines the metadata stored for a file that already
// lives in external storage.
type RecordDocumentRequest struct {
	ClientID     string                  `json:"clientID" binding:"required"`
	EngagementID *string                 `json:"engagementID"`
	StorageKey   string                  `json:"storageKey" binding:"required"`
	Description  string                  `json:"description"`
	Category     domain.DocumentCategory `json:"category" binding:"required,oneof=GENERAL_LEDGER BANK_STATEMENT TAX_RETURN PAYROLL OTHER"`
}

// DocumentResponse defines the data returned for a vault document.
type DocumentResponse struct {
	DocumentID   string                  `json:"documentID"`
	ClientID     string                  `json:"clientID"`
	EngagementID *string                 `json:"engagementID,omitempty"`
	UploadedBy   *string                 `json:"uploadedBy,omitempty"`
	StorageKey   string                  `json:"storageKey"`
	Description  string                  `json:"description,omitempty"`
	Category     domain.DocumentCategory `json:"category"`
	IsVerified   bool                    `json:"isVerified"`
	UploadedAt   time.Time               `json:"uploadedAt"`
}

// ToDocumentResponse converts a domain.ClientDocument to DocumentResponse DTO.
func ToDocumentResponse(d *domain.ClientDocument) DocumentResponse {
	return DocumentResponse{
		DocumentID:   d.DocumentID,
		ClientID:     d.ClientID,
		EngagementID: d.EngagementID,
		UploadedBy:   d.UploadedBy,
		StorageKey:   d.StorageKey,
		Description:  d.Description,
		Category:     d.Category,
		IsVerified:   d.IsVerified,
		UploadedAt:   d.UploadedAt,
	}
}

// ToListDocumentResponse converts a slice of domain.ClientDocument to DTOs.
func ToListDocumentResponse(docs []domain.ClientDocument) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = ToDocumentResponse(&d)
	}
	return res
}

// CreatePBCRequest defines the data needed to raise an evidence request.
type CreatePBCRequest struct {
	EngagementID string `json:"engagementID" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
}

// SubmitPBCRequest records the client's submission against a request.
type SubmitPBCRequest struct {
	AttachmentKey string `json:"attachmentKey" binding:"required"`
}

// ResolvePBCRequest accepts or rejects a submitted request.
type ResolvePBCRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// PBCRequestResponse defines the data returned for a PBC request.
type PBCRequestResponse struct {
	RequestID     string           `json:"requestID"`
	EngagementID  string           `json:"engagementID"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Status        domain.PBCStatus `json:"status"`
	AttachmentKey *string          `json:"attachmentKey,omitempty"`
	RequestedAt   time.Time        `json:"requestedAt"`
}

// ToPBCRequestResponse converts a domain.PBCRequest to PBCRequestResponse DTO.
func ToPBCRequestResponse(r *domain.PBCRequest) PBCRequestResponse {
	return PBCRequestResponse{
		RequestID:     r.RequestID,
		EngagementID:  r.EngagementID,
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		AttachmentKey: r.AttachmentKey,
		RequestedAt:   r.RequestedAt,
	}
}

// ToListPBCRequestResponse converts a slice of domain.PBCRequest to DTOs.
func ToListPBCRequestResponse(reqs []domain.PBCRequest) []PBCRequestResponse {
	res := make([]PBCRequestResponse, len(reqs))
	for i, r := range reqs {
		res[i] = ToPBCRequestResponse(&r)
	}
	return res
}
