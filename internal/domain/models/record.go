// internal/domain/models/record.go
package models

import "time"

// Record is a document-intake case routed between departments.
//
// DepartmentID is the department currently holding the record. It starts as
// the creator's department and follows the destination section on forward.
type Record struct {
	ID             int64     `bson:"_id" json:"id"`
	RegisterNumber string    `bson:"register_number" json:"register_number"`
	InclusionDate  time.Time `bson:"inclusion_date" json:"inclusion_date"`
	City           string    `bson:"city" json:"city"`
	State          string    `bson:"state" json:"state"`
	Requester      string    `bson:"requester" json:"requester"`
	DocumentType   string    `bson:"document_type" json:"document_type"`
	DocumentNumber string    `bson:"document_number" json:"document_number"`
	DocumentDate   string    `bson:"document_date" json:"document_date"`
	Description    string    `bson:"description" json:"description"`
	SEINumber      string    `bson:"sei_number" json:"sei_number"`
	ReceiptForm    string    `bson:"receipt_form" json:"receipt_form"`
	ContactInfo    string    `bson:"contact_info" json:"contact_info"`
	CreatedBy      int64     `bson:"created_by" json:"created_by"`
	DepartmentID   int64     `bson:"department_id" json:"department_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RecordPatch carries the editable intake fields of a record.
// Nil fields are left untouched.
type RecordPatch struct {
	City           *string
	State          *string
	Requester      *string
	DocumentType   *string
	DocumentNumber *string
	DocumentDate   *string
	Description    *string
	SEINumber      *string
	ReceiptForm    *string
	ContactInfo    *string
}

// Empty reports whether the patch changes nothing.
func (p RecordPatch) Empty() bool {
	return p.City == nil && p.State == nil && p.Requester == nil &&
		p.DocumentType == nil && p.DocumentNumber == nil && p.DocumentDate == nil &&
		p.Description == nil && p.SEINumber == nil && p.ReceiptForm == nil &&
		p.ContactInfo == nil
}
