package domain

import "time"

// DocumentCategory classifies audit evidence in the client document vault.
type DocumentCategory string

const (
	DocGeneralLedger DocumentCategory = "GENERAL_LEDGER"
	DocBankStatement DocumentCategory = "BANK_STATEMENT"
	DocTaxReturn     DocumentCategory = "TAX_RETURN"
	DocPayroll       DocumentCategory = "PAYROLL"
	DocOther         DocumentCategory = "OTHER"
)

// ClientDocument is metadata for a file in the client portal vault. The file
// bytes live in external storage; StorageKey is the opaque reference handed
// to that store.
type ClientDocument struct {
	DocumentID   string           `json:"documentID"` // Primary key (UUID)
	ClientID     string           `json:"clientID"`   // FK -> Client
	EngagementID *string          `json:"engagementID"`
	UploadedBy   *string          `json:"uploadedBy"` // UserID reference
	StorageKey   string           `json:"storageKey"`
	Description  string           `json:"description"`
	Category     DocumentCategory `json:"category"`
	IsVerified   bool             `json:"isVerified"`
	UploadedAt   time.Time        `json:"uploadedAt"`
}

// PBCStatus tracks a "Provided By Client" evidence request.
type PBCStatus string

const (
	PBCOpen      PBCStatus = "OPEN"
	PBCSubmitted PBCStatus = "SUBMITTED"
	PBCAccepted  PBCStatus = "ACCEPTED"
	PBCRejected  PBCStatus = "REJECTED"
)

// PBCRequest is an audit evidence request raised against an engagement and
// fulfilled by the client through the portal.
type PBCRequest struct {
	RequestID    string    `json:"requestID"`    // Primary key (UUID)
	EngagementID string    `json:"engagementID"` // FK -> Engagement
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       PBCStatus `json:"status"`
	AttachmentKey *string  `json:"attachmentKey"` // External storage reference
	RequestedAt  time.Time `json:"requestedAt"`
}
