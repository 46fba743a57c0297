package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/core/services"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// MockPostingService is a mock type for the PostingSvcFacade interface
type MockPostingService struct {
	mock.Mock
}

// Ensure MockPostingService implements portssvc.PostingSvcFacade
var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostInvoice(ctx context.Context, invoiceID string, actingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, invoiceID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Test Suite Setup ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockClientRepo  *MockClientRepository
	mockPostingSvc  *MockPostingService
	service         portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockPostingSvc = new(MockPostingService)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockClientRepo, suite.mockPostingSvc)
}

func createInvoiceRequest(clientID string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientID:      clientID,
		InvoiceNumber: "INV-101",
		IssueDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		TaxAmount:     decimal.NewFromInt(15),
		Lines: []dto.CreateInvoiceLineRequest{
			{Description: "Audit fieldwork", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(8)},
			{Description: "Report drafting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
		},
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	clientID := uuid.NewString()
	req := createInvoiceRequest(clientID)

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).
		Return(&domain.Client{ClientID: clientID, Name: "Acme Widgets LLC", IsActive: true}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine")).
		Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.NotEmpty(invoice.InvoiceID)
	suite.Equal(domain.InvoiceDraft, invoice.Status)
	suite.Nil(invoice.JournalEntryID)

	// Totals are derived from the lines: 10*8 + 2*10 = 100, plus 15 tax.
	suite.True(invoice.Subtotal.Equal(decimal.NewFromInt(100)))
	suite.True(invoice.Total.Equal(decimal.NewFromInt(115)))
	suite.Require().Len(invoice.Lines, 2)
	suite.True(invoice.Lines[0].Amount.Equal(decimal.NewFromInt(80)))
	suite.True(invoice.Lines[1].Amount.Equal(decimal.NewFromInt(20)))

	suite.Equal(creatorUserID, invoice.CreatedBy)
	suite.WithinDuration(time.Now(), invoice.CreatedAt, time.Second)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UnknownClient() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := createInvoiceRequest(clientID)

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NegativeTax() {
	ctx := context.Background()
	req := createInvoiceRequest(uuid.NewString())
	req.TaxAmount = decimal.NewFromInt(-1)

	invoice, err := suite.service.CreateInvoice(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateNumber() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := createInvoiceRequest(clientID)

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).
		Return(&domain.Client{ClientID: clientID, IsActive: true}, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine")).
		Return(apperrors.ErrDuplicate).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NoLines() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := createInvoiceRequest(clientID)
	req.Lines = nil

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).
		Return(&domain.Client{ClientID: clientID, IsActive: true}, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, services.ErrInvoiceMinLines)
}

func (suite *InvoiceServiceTestSuite) TestReplaceDraftLines_RecalculatesTotals() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	userID := uuid.NewString()
	draft := &domain.Invoice{
		InvoiceID: invoiceID,
		ClientID:  uuid.NewString(),
		Status:    domain.InvoiceDraft,
		TaxAmount: decimal.NewFromInt(5),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(draft, nil).Once()
	suite.mockInvoiceRepo.On("ReplaceLines", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine")).
		Return(nil).Once()

	lineReqs := []dto.CreateInvoiceLineRequest{
		{Description: "Advisory hours", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(50)},
	}
	invoice, err := suite.service.ReplaceDraftLines(ctx, invoiceID, lineReqs, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.True(invoice.Subtotal.Equal(decimal.NewFromInt(150)))
	suite.True(invoice.Total.Equal(decimal.NewFromInt(155)))
	suite.Equal(userID, invoice.LastUpdatedBy)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestReplaceDraftLines_NotDraft() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	sent := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceSent}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(sent, nil).Once()

	lineReqs := []dto.CreateInvoiceLineRequest{
		{Description: "Advisory hours", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
	}
	invoice, err := suite.service.ReplaceDraftLines(ctx, invoiceID, lineReqs, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, services.ErrInvoiceNotDraft)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ReplaceLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestFinalizeAndSend_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	userID := uuid.NewString()
	draft := &domain.Invoice{
		InvoiceID: invoiceID,
		ClientID:  uuid.NewString(),
		Status:    domain.InvoiceDraft,
		Subtotal:  decimal.NewFromInt(100),
		TaxAmount: decimal.NewFromInt(15),
		Total:     decimal.NewFromInt(115),
	}
	entryID := uuid.NewString()
	sent := &domain.Invoice{
		InvoiceID:      invoiceID,
		ClientID:       draft.ClientID,
		Status:         domain.InvoiceSent,
		Subtotal:       draft.Subtotal,
		TaxAmount:      draft.TaxAmount,
		Total:          draft.Total,
		JournalEntryID: &entryID,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(draft, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.InvoiceSent, userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockPostingSvc.On("PostInvoice", ctx, invoiceID, userID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.Posted}, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(sent, nil).Once()

	invoice, err := suite.service.FinalizeAndSend(ctx, invoiceID, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.InvoiceSent, invoice.Status)
	suite.Require().NotNil(invoice.JournalEntryID)
	suite.Equal(entryID, *invoice.JournalEntryID)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestFinalizeAndSend_NotDraft() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	sent := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceSent}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(sent, nil).Once()

	invoice, err := suite.service.FinalizeAndSend(ctx, invoiceID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, services.ErrInvoiceNotDraft)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestFinalizeAndSend_PostingFails() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	userID := uuid.NewString()
	draft := &domain.Invoice{
		InvoiceID: invoiceID,
		Status:    domain.InvoiceDraft,
		Total:     decimal.NewFromInt(115),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(draft, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.InvoiceSent, userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockPostingSvc.On("PostInvoice", ctx, invoiceID, userID).Return(nil, services.ErrLedgerMapping).Once()

	invoice, err := suite.service.FinalizeAndSend(ctx, invoiceID, userID)

	// The invoice is already SENT; the caller retries posting separately.
	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, services.ErrLedgerMapping)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_PassesFilters() {
	ctx := context.Background()
	clientID := uuid.NewString()
	status := domain.InvoiceSent
	invoices := []domain.Invoice{{InvoiceID: uuid.NewString(), ClientID: clientID, Status: status}}

	suite.mockInvoiceRepo.On("ListInvoices", ctx, 20, (*string)(nil), &clientID, &status).
		Return(invoices, nil, nil).Once()

	resp, err := suite.service.ListInvoices(ctx, dto.ListInvoicesParams{ClientID: &clientID, Status: &status})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Invoices, 1)
	suite.Nil(resp.NextToken)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
