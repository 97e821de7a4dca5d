// internal/app/features/records/types.go
package records

import (
	"github.com/dalemusser/recordhub/internal/app/system/actor"
	"github.com/dalemusser/recordhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/recordhub/internal/app/system/normalize"
	"github.com/dalemusser/recordhub/internal/domain/lifecycle"
	"github.com/dalemusser/recordhub/internal/domain/models"
)

// recordView is a record as served to clients: the stored fields plus the
// derived current situation.
type recordView struct {
	models.Record
	Situation lifecycle.Status `json:"situation"`
	Tags      []models.Tag     `json:"tags,omitempty"`
}

type createInput struct {
	City           string    `json:"city" validate:"notblank,max=200"`
	State          string    `json:"state" validate:"notblank,max=100"`
	Requester      string    `json:"requester" validate:"notblank,max=300"`
	DocumentType   string    `json:"document_type" validate:"notblank,max=100"`
	DocumentNumber string    `json:"document_number" validate:"notblank,max=100"`
	DocumentDate   string    `json:"document_date" validate:"notblank,max=50"`
	Description    string    `json:"description" validate:"notblank,max=5000"`
	SEINumber      string    `json:"sei_number" validate:"max=100"`
	ReceiptForm    string    `json:"receipt_form" validate:"max=100"`
	ContactInfo    string    `json:"contact_info" validate:"max=500"`
	CreatedBy      actor.Ref `json:"created_by"`
	Tags           []int64   `json:"tags" validate:"dive,gt=0"`
}

func (in *createInput) sanitize() {
	in.City = htmlsanitize.PlainText(in.City)
	in.State = htmlsanitize.PlainText(in.State)
	in.Requester = htmlsanitize.PlainText(in.Requester)
	in.DocumentType = htmlsanitize.PlainText(in.DocumentType)
	in.DocumentNumber = htmlsanitize.PlainText(in.DocumentNumber)
	in.DocumentDate = htmlsanitize.PlainText(in.DocumentDate)
	in.Description = htmlsanitize.PlainText(in.Description)
	in.SEINumber = normalize.SEI(in.SEINumber)
	in.ReceiptForm = htmlsanitize.PlainText(in.ReceiptForm)
	in.ContactInfo = htmlsanitize.PlainText(in.ContactInfo)
}

func (in createInput) record() models.Record {
	return models.Record{
		City:           in.City,
		State:          in.State,
		Requester:      in.Requester,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		DocumentDate:   in.DocumentDate,
		Description:    in.Description,
		SEINumber:      in.SEINumber,
		ReceiptForm:    in.ReceiptForm,
		ContactInfo:    in.ContactInfo,
	}
}

// editInput carries a partial update. Absent fields are left alone; a
// present "tags" list replaces the record's tag set.
type editInput struct {
	City           *string  `json:"city" validate:"omitnil,notblank,max=200"`
	State          *string  `json:"state" validate:"omitnil,notblank,max=100"`
	Requester      *string  `json:"requester" validate:"omitnil,notblank,max=300"`
	DocumentType   *string  `json:"document_type" validate:"omitnil,notblank,max=100"`
	DocumentNumber *string  `json:"document_number" validate:"omitnil,notblank,max=100"`
	DocumentDate   *string  `json:"document_date" validate:"omitnil,notblank,max=50"`
	Description    *string  `json:"description" validate:"omitnil,notblank,max=5000"`
	SEINumber      *string  `json:"sei_number" validate:"omitnil,max=100"`
	ReceiptForm    *string  `json:"receipt_form" validate:"omitnil,max=100"`
	ContactInfo    *string  `json:"contact_info" validate:"omitnil,max=500"`
	Tags           *[]int64 `json:"tags" validate:"omitnil,dive,gt=0"`
}

func (in *editInput) sanitize() {
	in.City = htmlsanitize.PlainTextPtr(in.City)
	in.State = htmlsanitize.PlainTextPtr(in.State)
	in.Requester = htmlsanitize.PlainTextPtr(in.Requester)
	in.DocumentType = htmlsanitize.PlainTextPtr(in.DocumentType)
	in.DocumentNumber = htmlsanitize.PlainTextPtr(in.DocumentNumber)
	in.DocumentDate = htmlsanitize.PlainTextPtr(in.DocumentDate)
	in.Description = htmlsanitize.PlainTextPtr(in.Description)
	in.SEINumber = normalize.SEIPtr(in.SEINumber)
	in.ReceiptForm = htmlsanitize.PlainTextPtr(in.ReceiptForm)
	in.ContactInfo = htmlsanitize.PlainTextPtr(in.ContactInfo)
}

func (in editInput) patch() models.RecordPatch {
	return models.RecordPatch{
		City:           in.City,
		State:          in.State,
		Requester:      in.Requester,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		DocumentDate:   in.DocumentDate,
		Description:    in.Description,
		SEINumber:      in.SEINumber,
		ReceiptForm:    in.ReceiptForm,
		ContactInfo:    in.ContactInfo,
	}
}

// changedFields names the fields present in the edit, for audit details.
func (in editInput) changedFields() []string {
	var out []string
	add := func(name string, set bool) {
		if set {
			out = append(out, name)
		}
	}
	add("city", in.City != nil)
	add("state", in.State != nil)
	add("requester", in.Requester != nil)
	add("document_type", in.DocumentType != nil)
	add("document_number", in.DocumentNumber != nil)
	add("document_date", in.DocumentDate != nil)
	add("description", in.Description != nil)
	add("sei_number", in.SEINumber != nil)
	add("receipt_form", in.ReceiptForm != nil)
	add("contact_info", in.ContactInfo != nil)
	add("tags", in.Tags != nil)
	return out
}

type forwardInput struct {
	DestinationID int64     `json:"destination_id" validate:"gt=0"`
	OriginID      int64     `json:"origin_id" validate:"gt=0"`
	ForwardedBy   actor.Ref `json:"forwarded_by"`
}

type statusInput struct {
	Situation string `json:"situation" validate:"notblank"`
}

type closeInput struct {
	ClosedBy actor.Ref `json:"closed_by"`
	Reason   string    `json:"reason" validate:"notblank,max=2000"`
}

type reopenInput struct {
	ReopenedBy actor.Ref `json:"reopened_by"`
	Reason     string    `json:"reason" validate:"notblank,max=2000"`
}

type addTagInput struct {
	TagID int64 `json:"tag_id" validate:"gt=0"`
}

type pageInput struct {
	DepartmentID *int64 `json:"department_id" validate:"omitnil,gt=0"`
}

type seiInput struct {
	SEINumber string `json:"sei_number" validate:"notblank,max=100"`
}

type seiResult struct {
	Found  bool        `json:"found"`
	Record *recordView `json:"record,omitempty"`
}

type pageResult struct {
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Total    int64        `json:"total"`
	Records  []recordView `json:"records"`
}

type countResult struct {
	Count int64 `json:"count"`
}

type currentDepartmentResult struct {
	RecordID   int64             `json:"record_id"`
	Department models.Department `json:"department"`
}
