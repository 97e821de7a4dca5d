// internal/domain/models/fields.go
package models

// FieldInfo describes one intake field of a record for clients building forms.
type FieldInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Editable    bool   `json:"editable"`
}

// RecordFields is the catalog served by GET /records/fields.
var RecordFields = []FieldInfo{
	{Name: "register_number", Description: "Generated register number (<epoch-ms>/<year>)", Type: "string", Required: false, Editable: false},
	{Name: "inclusion_date", Description: "Date the record entered the system", Type: "datetime", Required: false, Editable: false},
	{Name: "city", Description: "City of origin", Type: "string", Required: true, Editable: true},
	{Name: "state", Description: "State of origin", Type: "string", Required: true, Editable: true},
	{Name: "requester", Description: "Person or body that sent the document", Type: "string", Required: true, Editable: true},
	{Name: "document_type", Description: "Kind of document received", Type: "string", Required: true, Editable: true},
	{Name: "document_number", Description: "Number printed on the document", Type: "string", Required: true, Editable: true},
	{Name: "document_date", Description: "Date printed on the document", Type: "string", Required: true, Editable: true},
	{Name: "description", Description: "Summary of the request", Type: "text", Required: true, Editable: true},
	{Name: "sei_number", Description: "SEI process number", Type: "string", Required: false, Editable: true},
	{Name: "receipt_form", Description: "How the document was received", Type: "string", Required: false, Editable: true},
	{Name: "contact_info", Description: "Contact for follow-up", Type: "string", Required: false, Editable: true},
	{Name: "created_by", Description: "Email or id of the user registering the record", Type: "user", Required: true, Editable: false},
	{Name: "tags", Description: "Ids of tags to attach", Type: "tag[]", Required: false, Editable: true},
}
