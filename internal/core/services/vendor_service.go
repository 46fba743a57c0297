package services

import (
	"context"
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

// vendorService provides the accounts-payable stub operations. Bills are
// recorded for payable visibility only; nothing posts them to the ledger.
type vendorService struct {
	BaseService
	vendorRepo portsrepo.VendorRepositoryFacade
}

// NewVendorService creates a new VendorService.
func NewVendorService(vendorRepo portsrepo.VendorRepositoryFacade) portssvc.VendorSvcFacade {
	return &vendorService{
		vendorRepo: vendorRepo,
	}
}

var _ portssvc.VendorSvcFacade = (*vendorService)(nil)

// CreateVendor registers a new vendor.
func (s *vendorService) CreateVendor(ctx context.Context, req dto.CreateVendorRequest, creatorUserID string) (*domain.Vendor, error) {
	logger := s.GetLogger(ctx)

	now := time.Now().UTC()
	vendor := domain.Vendor{
		VendorID:     uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		TaxID:        req.TaxID,
		PaymentTerms: req.PaymentTerms,
		Currency:     req.Currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.vendorRepo.SaveVendor(ctx, vendor); err != nil {
		logger.Error("Failed to save vendor", slog.String("error", err.Error()), slog.String("vendor_id", vendor.VendorID))
		return nil, fmt.Errorf("failed to save vendor: %w", err)
	}

	logger.Info("Vendor created", slog.String("vendor_id", vendor.VendorID), slog.String("name", vendor.Name))
	return &vendor, nil
}

// ListVendors retrieves all vendors.
func (s *vendorService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	vendors, err := s.vendorRepo.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

// CreateBill records a vendor bill.
func (s *vendorService) CreateBill(ctx context.Context, req dto.CreateBillRequest, creatorUserID string) (*domain.Bill, error) {
	logger := s.GetLogger(ctx)

	if req.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: bill total must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:      uuid.NewString(),
		VendorID:    req.VendorID,
		BillNumber:  req.BillNumber,
		IssueDate:   req.IssueDate,
		DueDate:     req.DueDate,
		TotalAmount: req.TotalAmount,
		Status:      domain.BillDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.vendorRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill", slog.String("error", err.Error()), slog.String("bill_id", bill.BillID))
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	logger.Info("Bill recorded", slog.String("bill_id", bill.BillID), slog.String("vendor_id", bill.VendorID))
	return &bill, nil
}

// ListBillsByVendor retrieves a vendor's bills.
func (s *vendorService) ListBillsByVendor(ctx context.Context, vendorID string) ([]domain.Bill, error) {
	bills, err := s.vendorRepo.ListBillsByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills for vendor %s: %w", vendorID, err)
	}
	return bills, nil
}
