package mapping

import (
	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/models"
)

// ToModelVendor converts a domain Vendor to a model Vendor
func ToModelVendor(d domain.Vendor) models.Vendor {
	return models.Vendor{
		VendorID:     d.VendorID,
		Name:         d.Name,
		Email:        d.Email,
		TaxID:        d.TaxID,
		PaymentTerms: d.PaymentTerms,
		Currency:     d.Currency,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVendor converts a model Vendor to a domain Vendor
func ToDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		VendorID:     m.VendorID,
		Name:         m.Name,
		Email:        m.Email,
		TaxID:        m.TaxID,
		PaymentTerms: m.PaymentTerms,
		Currency:     m.Currency,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVendorSlice converts a slice of model Vendors to domain Vendors
func ToDomainVendorSlice(ms []models.Vendor) []domain.Vendor {
	ds := make([]domain.Vendor, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVendor(m)
	}
	return ds
}

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:         d.BillID,
		VendorID:       d.VendorID,
		BillNumber:     d.BillNumber,
		IssueDate:      d.IssueDate,
		DueDate:        d.DueDate,
		TotalAmount:    d.TotalAmount,
		Status:         string(d.Status),
		JournalEntryID: d.JournalEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:         m.BillID,
		VendorID:       m.VendorID,
		BillNumber:     m.BillNumber,
		IssueDate:      m.IssueDate,
		DueDate:        m.DueDate,
		TotalAmount:    m.TotalAmount,
		Status:         domain.BillStatus(m.Status),
		JournalEntryID: m.JournalEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBillSlice converts a slice of model Bills to domain Bills
func ToDomainBillSlice(ms []models.Bill) []domain.Bill {
	ds := make([]domain.Bill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBill(m)
	}
	return ds
}
