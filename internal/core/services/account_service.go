package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// standardChart is the firm's default chart of accounts, installed by
// SeedStandardChart. Codes already present are left untouched.
var standardChart = []struct {
	Code        string
	Name        string
	Type        domain.AccountType
	Description string
}{
	{"1000", "Cash on Hand", domain.Asset, "Primary operating bank accounts"},
	{"1200", "Accounts Receivable", domain.Asset, "Unpaid client invoices"},
	{"1500", "Equipment & Machinery", domain.Asset, "Fixed assets"},
	{"2000", "Accounts Payable", domain.Liability, "Money owed to vendors"},
	{"2100", "Sales Tax Payable", domain.Liability, "VAT/GST collected"},
	{"3000", "Owner Equity", domain.Equity, "Initial investment"},
	{"4000", "Sales Revenue", domain.Income, "Revenue from audits"},
	{"4100", "Consulting Income", domain.Income, "Revenue from advisory services"},
	{"5000", "Rent Expense", domain.Expense, "Office lease payments"},
	{"5100", "Salaries & Wages", domain.Expense, "Staff payroll"},
	{"5200", "Software Subscriptions", domain.Expense, "Tech stack and licenses"},
}

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account in the chart.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := s.GetLogger(ctx)

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	if req.ParentCode != nil {
		if *req.ParentCode == req.Code {
			return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
		}
		parent, err := s.accountRepo.FindAccountByCode(ctx, *req.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, *req.ParentCode)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account %s has type %s, child must match", apperrors.ErrValidation, parent.Code, parent.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		ParentCode:  req.ParentCode,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_code", account.Code), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByCode retrieves a single account.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", code))
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts retrieves the chart ordered by code, optionally filtered by type.
func (s *accountService) ListAccounts(ctx context.Context, accountType *domain.AccountType) ([]domain.Account, error) {
	if accountType != nil && !accountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *accountType)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies the non-nil fields of req to an existing account.
func (s *accountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := s.GetLogger(ctx)

	account, err := s.GetAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_code", code))
		return nil, fmt.Errorf("failed to update account %s: %w", code, err)
	}

	logger.Info("Account updated", slog.String("account_code", code))
	return account, nil
}

// DeactivateAccount soft-disables an account so it stops accepting new items.
func (s *accountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	logger := s.GetLogger(ctx)

	if _, err := s.GetAccountByCode(ctx, code); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, code, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_code", code))
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}
	logger.Info("Account deactivated", slog.String("account_code", code))
	return nil
}

// DeleteAccount removes an account that no journal item references.
func (s *accountService) DeleteAccount(ctx context.Context, code string) error {
	logger := s.GetLogger(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrReferenced) {
			return fmt.Errorf("%w: account %s has journal activity", apperrors.ErrReferenced, code)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", code))
		}
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_code", code))
		return fmt.Errorf("failed to delete account %s: %w", code, err)
	}
	logger.Info("Account deleted", slog.String("account_code", code))
	return nil
}

// SeedStandardChart installs the default chart, skipping codes that already
// exist, and returns how many accounts were created.
func (s *accountService) SeedStandardChart(ctx context.Context, userID string) (int, error) {
	logger := s.GetLogger(ctx)

	now := time.Now().UTC()
	created := 0
	for _, std := range standardChart {
		account := domain.Account{
			Code:        std.Code,
			Name:        std.Name,
			AccountType: std.Type,
			Description: std.Description,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		err := s.accountRepo.SaveAccount(ctx, account)
		if err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue // already seeded
			}
			logger.Error("Failed to seed account", slog.String("error", err.Error()), slog.String("account_code", std.Code))
			return created, fmt.Errorf("failed to seed account %s: %w", std.Code, err)
		}
		created++
	}

	logger.Info("Standard chart seeded", slog.Int("created", created))
	return created, nil
}
