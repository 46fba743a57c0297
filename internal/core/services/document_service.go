package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// documentService provides portal document metadata and PBC operations.
// Only metadata is handled here; file bytes live in external storage behind
// an opaque key.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// RecordDocument stores metadata for a file already placed in external storage.
func (s *documentService) RecordDocument(ctx context.Context, req dto.RecordDocumentRequest, uploaderUserID string) (*domain.ClientDocument, error) {
	logger := s.GetLogger(ctx)

	doc := domain.ClientDocument{
		DocumentID:   uuid.NewString(),
		ClientID:     req.ClientID,
		EngagementID: req.EngagementID,
		UploadedBy:   &uploaderUserID,
		StorageKey:   req.StorageKey,
		Description:  req.Description,
		Category:     req.Category,
		UploadedAt:   time.Now().UTC(),
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document metadata", slog.String("error", err.Error()), slog.String("document_id", doc.DocumentID))
		return nil, fmt.Errorf("failed to save document metadata: %w", err)
	}

	logger.Info("Document recorded", slog.String("document_id", doc.DocumentID), slog.String("category", string(doc.Category)))
	return &doc, nil
}

// ListDocumentsByClient retrieves a client's document metadata.
func (s *documentService) ListDocumentsByClient(ctx context.Context, clientID string) ([]domain.ClientDocument, error) {
	docs, err := s.documentRepo.ListDocumentsByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for client %s: %w", clientID, err)
	}
	return docs, nil
}

// VerifyDocument flags a document as verified by staff.
func (s *documentService) VerifyDocument(ctx context.Context, documentID string) error {
	if err := s.documentRepo.MarkDocumentVerified(ctx, documentID); err != nil {
		return fmt.Errorf("failed to verify document %s: %w", documentID, err)
	}
	return nil
}

// CreatePBCRequest raises a new evidence request on an engagement.
func (s *documentService) CreatePBCRequest(ctx context.Context, req dto.CreatePBCRequest) (*domain.PBCRequest, error) {
	logger := s.GetLogger(ctx)

	pbc := domain.PBCRequest{
		RequestID:    uuid.NewString(),
		EngagementID: req.EngagementID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       domain.PBCOpen,
		RequestedAt:  time.Now().UTC(),
	}

	if err := s.documentRepo.SavePBCRequest(ctx, pbc); err != nil {
		logger.Error("Failed to save PBC request", slog.String("error", err.Error()), slog.String("request_id", pbc.RequestID))
		return nil, fmt.Errorf("failed to save PBC request: %w", err)
	}

	logger.Info("PBC request created", slog.String("request_id", pbc.RequestID), slog.String("engagement_id", req.EngagementID))
	return &pbc, nil
}

// ListPBCRequests retrieves an engagement's PBC requests.
func (s *documentService) ListPBCRequests(ctx context.Context, engagementID string) ([]domain.PBCRequest, error) {
	reqs, err := s.documentRepo.ListPBCRequestsByEngagement(ctx, engagementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list PBC requests for engagement %s: %w", engagementID, err)
	}
	return reqs, nil
}

// SubmitPBCRequest records the client's submission against a request.
func (s *documentService) SubmitPBCRequest(ctx context.Context, requestID string, attachmentKey string) error {
	if err := s.documentRepo.UpdatePBCRequestStatus(ctx, requestID, domain.PBCSubmitted, &attachmentKey); err != nil {
		return fmt.Errorf("failed to submit PBC request %s: %w", requestID, err)
	}
	return nil
}

// ResolvePBCRequest accepts or rejects a submitted request.
func (s *documentService) ResolvePBCRequest(ctx context.Context, requestID string, accepted bool) error {
	status := domain.PBCAccepted
	if !accepted {
		status = domain.PBCRejected
	}
	if err := s.documentRepo.UpdatePBCRequestStatus(ctx, requestID, status, nil); err != nil {
		return fmt.Errorf("failed to resolve PBC request %s: %w", requestID, err)
	}
	return nil
}
