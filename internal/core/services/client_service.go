package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// clientService provides client registry operations.
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{
		clientRepo: clientRepo,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient registers a new client.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	logger := s.GetLogger(ctx)

	riskRating := req.RiskRating
	if riskRating == "" {
		riskRating = domain.RiskLow
	}

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:        uuid.NewString(),
		Name:            req.Name,
		TaxIDNumber:     req.TaxIDNumber,
		EntityType:      req.EntityType,
		Industry:        req.Industry,
		AssignedPartner: req.AssignedPartner,
		FiscalYearEnd:   req.FiscalYearEnd,
		RiskRating:      riskRating,
		BillingAddress:  req.BillingAddress,
		PrimaryCurrency: req.PrimaryCurrency,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: tax ID %s is already registered", apperrors.ErrDuplicate, req.TaxIDNumber)
		}
		logger.Error("Failed to save client", slog.String("error", err.Error()), slog.String("client_id", client.ClientID))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID), slog.String("name", client.Name))
	return &client, nil
}

// GetClientByID retrieves a client.
func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
		}
		return nil, fmt.Errorf("failed to fetch client %s: %w", clientID, err)
	}
	return client, nil
}

// ListClients retrieves all active clients.
func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// UpdateClient applies the non-nil fields of req to an existing client.
func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	logger := s.GetLogger(ctx)

	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		client.Name = *req.Name
		updated = true
	}
	if req.EntityType != nil {
		client.EntityType = *req.EntityType
		updated = true
	}
	if req.Industry != nil {
		client.Industry = *req.Industry
		updated = true
	}
	if req.AssignedPartner != nil {
		client.AssignedPartner = req.AssignedPartner
		updated = true
	}
	if req.FiscalYearEnd != nil {
		client.FiscalYearEnd = req.FiscalYearEnd
		updated = true
	}
	if req.RiskRating != nil {
		client.RiskRating = *req.RiskRating
		updated = true
	}
	if req.BillingAddress != nil {
		client.BillingAddress = *req.BillingAddress
		updated = true
	}
	if req.PrimaryCurrency != nil {
		client.PrimaryCurrency = *req.PrimaryCurrency
		updated = true
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return client, nil
	}

	client.LastUpdatedAt = time.Now().UTC()
	client.LastUpdatedBy = userID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}

	logger.Info("Client updated", slog.String("client_id", clientID))
	return client, nil
}
