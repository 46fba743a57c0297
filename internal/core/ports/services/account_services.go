package services

import (
	"context"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// AccountSvcFacade defines the chart-of-accounts operations.
type AccountSvcFacade interface {
	// CreateAccount registers a new account. Fails with apperrors.ErrDuplicate
	// when the code is taken.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves accounts ordered by code, optionally filtered to
	// one type.
	ListAccounts(ctx context.Context, accountType *domain.AccountType) ([]domain.Account, error)

	// UpdateAccount applies the non-nil fields of req to an existing account.
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-disables an account.
	DeactivateAccount(ctx context.Context, code string, userID string) error

	// DeleteAccount removes an unreferenced account. Fails with
	// apperrors.ErrReferenced when journal items point at the code.
	DeleteAccount(ctx context.Context, code string) error

	// SeedStandardChart installs the firm's default chart of accounts,
	// skipping codes that already exist. Returns the number created.
	SeedStandardChart(ctx context.Context, userID string) (int, error)
}
