package dto

import (
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest defines the data needed to register a vendor.
type CreateVendorRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	TaxID        string `json:"taxID"`
	PaymentTerms string `json:"paymentTerms"`
	Currency     string `json:"currency"`
}

// VendorResponse defines the data returned for a vendor.
type VendorResponse struct {
	VendorID     string    `json:"vendorID"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	TaxID        string    `json:"taxID,omitempty"`
	PaymentTerms string    `json:"paymentTerms,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// ToVendorResponse converts a domain.Vendor to VendorResponse DTO.
func ToVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		VendorID:     v.VendorID,
		Name:         v.Name,
		Email:        v.Email,
		TaxID:        v.TaxID,
		PaymentTerms: v.PaymentTerms,
		Currency:     v.Currency,
		CreatedAt:    v.CreatedAt,
		CreatedBy:    v.CreatedBy,
	}
}

// ToListVendorResponse converts a slice of domain.Vendor to DTOs.
func ToListVendorResponse(vendors []domain.Vendor) []VendorResponse {
	res := make([]VendorResponse, len(vendors))
	for i, v := range vendors {
		res[i] = ToVendorResponse(&v)
	}
	return res
}

// CreateBillRequest defines the data needed to record a vendor bill.
type CreateBillRequest struct {
	VendorID    string          `json:"vendorID" binding:"required"`
	BillNumber  string          `json:"billNumber" binding:"required"`
	IssueDate   time.Time       `json:"issueDate" binding:"required"`
	DueDate     time.Time       `json:"dueDate" binding:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
}

// BillResponse defines the data returned for a vendor bill.
type BillResponse struct {
	BillID         string            `json:"billID"`
	VendorID       string            `json:"vendorID"`
	BillNumber     string            `json:"billNumber"`
	IssueDate      time.Time         `json:"issueDate"`
	DueDate        time.Time         `json:"dueDate"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	Status         domain.BillStatus `json:"status"`
	JournalEntryID *string           `json:"journalEntryID,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	CreatedBy      string            `json:"createdBy"`
}

// ToBillResponse converts a domain.Bill to BillResponse DTO.
func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		BillID:         b.BillID,
		VendorID:       b.VendorID,
		BillNumber:     b.BillNumber,
		IssueDate:      b.IssueDate,
		DueDate:        b.DueDate,
		TotalAmount:    b.TotalAmount,
		Status:         b.Status,
		JournalEntryID: b.JournalEntryID,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
	}
}

// ToListBillResponse converts a slice of domain.Bill to DTOs.
func ToListBillResponse(bills []domain.Bill) []BillResponse {
	res := make([]BillResponse, len(bills))
	for i, b := range bills {
		res[i] = ToBillResponse(&b)
	}
	return res
}
