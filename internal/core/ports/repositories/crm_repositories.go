package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
)

// ClientRepositoryFacade defines persistence operations for clients.
type ClientRepositoryFacade interface {
	// SaveClient persists a new client. Returns apperrors.ErrDuplicate when
	// the tax ID is already registered.
	SaveClient(ctx context.Context, client domain.Client) error

	// FindClientByID retrieves a client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves all active clients ordered by name.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error
}

// EngagementRepositoryFacade defines persistence operations for engagements
// and their tasks.
type EngagementRepositoryFacade interface {
	// SaveEngagement persists a new engagement.
	SaveEngagement(ctx context.Context, engagement domain.Engagement) error

	// FindEngagementByID retrieves an engagement by its unique identifier.
	FindEngagementByID(ctx context.Context, engagementID string) (*domain.Engagement, error)

	// ListEngagementsByClient retrieves a client's engagements, newest first.
	ListEngagementsByClient(ctx context.Context, clientID string) ([]domain.Engagement, error)

	// UpdateEngagement updates an existing engagement's details.
	UpdateEngagement(ctx context.Context, engagement domain.Engagement) error

	// UpdateEngagementProgress writes only the denormalized completion
	// percentage.
	UpdateEngagementProgress(ctx context.Context, engagementID string, percentage int, userID string, now time.Time) error

	// SaveTask persists a new engagement task.
	SaveTask(ctx context.Context, task domain.EngagementTask) error

	// FindTaskByID retrieves a task by its unique identifier.
	FindTaskByID(ctx context.Context, taskID string) (*domain.EngagementTask, error)

	// ListTasksByEngagement retrieves all tasks of an engagement in creation order.
	ListTasksByEngagement(ctx context.Context, engagementID string) ([]domain.EngagementTask, error)

	// UpdateTask updates an existing task.
	UpdateTask(ctx context.Context, task domain.EngagementTask) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, taskID string) error

	// CountTasks returns total and DONE task counts for an engagement.
	CountTasks(ctx context.Context, engagementID string) (total int, done int, err error)
}

// DocumentRepositoryFacade defines persistence operations for client document
// metadata and PBC requests.
type DocumentRepositoryFacade interface {
	// SaveDocument persists document metadata.
	SaveDocument(ctx context.Context, doc domain.ClientDocument) error

	// ListDocumentsByClient retrieves a client's document metadata, newest first.
	ListDocumentsByClient(ctx context.Context, clientID string) ([]domain.ClientDocument, error)

	// MarkDocumentVerified flags a document as verified by staff.
	MarkDocumentVerified(ctx context.Context, documentID string) error

	// SavePBCRequest persists a new PBC request.
	SavePBCRequest(ctx context.Context, req domain.PBCRequest) error

	// ListPBCRequestsByEngagement retrieves an engagement's PBC requests.
	ListPBCRequestsByEngagement(ctx context.Context, engagementID string) ([]domain.PBCRequest, error)

	// UpdatePBCRequestStatus transitions a PBC request, optionally attaching a
	// storage key for the client's submission.
	UpdatePBCRequestStatus(ctx context.Context, requestID string, status domain.PBCStatus, attachmentKey *string) error
}

// VendorRepositoryFacade defines persistence operations for vendors and bills.
type VendorRepositoryFacade interface {
	// SaveVendor persists a new vendor.
	SaveVendor(ctx context.Context, vendor domain.Vendor) error

	// ListVendors retrieves all vendors ordered by name.
	ListVendors(ctx context.Context) ([]domain.Vendor, error)

	// SaveBill persists a new bill.
	SaveBill(ctx context.Context, bill domain.Bill) error

	// FindBillByID retrieves a bill by its unique identifier.
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)

	// ListBillsByVendor retrieves a vendor's bills ordered by due date.
	ListBillsByVendor(ctx context.Context, vendorID string) ([]domain.Bill, error)

	// UpdateBillStatus transitions a bill's status.
	UpdateBillStatus(ctx context.Context, billID string, status domain.BillStatus, userID string, now time.Time) error
}
