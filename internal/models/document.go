package models

import "time"

// ClientDocument is a row in the client_documents table. Only metadata lives
// here; the file bytes sit in external storage under storage_key.
type ClientDocument struct {
	DocumentID   string    `db:"document_id"`
	ClientID     string    `db:"client_id"`
	EngagementID *string   `db:"engagement_id"`
	UploadedBy   *string   `db:"uploaded_by"`
	StorageKey   string    `db:"storage_key"`
	Description  string    `db:"description"`
	Category     string    `db:"category"`
	IsVerified   bool      `db:"is_verified"`
	UploadedAt   time.Time `db:"uploaded_at"`
}

// PBCRequest is a row in the pbc_requests table.
type PBCRequest struct {
	RequestID     string    `db:"request_id"`
	EngagementID  string    `db:"engagement_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Status        string    `db:"status"`
	AttachmentKey *string   `db:"attachment_key"`
	RequestedAt   time.Time `db:"requested_at"`
}
