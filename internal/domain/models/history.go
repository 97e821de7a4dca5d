// internal/domain/models/history.go
package models

import "time"

// History actions.
const (
	ActionCreated       = "created"
	ActionForwarded     = "forwarded"
	ActionStatusChanged = "status_changed"
	ActionClosed        = "closed"
	ActionReopened      = "reopened"
	ActionEdited        = "edited"
)

// HistoryEntry is one row of a record's routing/status history.
// Optional fields are only set for the actions that carry them.
type HistoryEntry struct {
	ID         int64  `bson:"_id" json:"id"`
	RecordID   int64  `bson:"record_id" json:"record_id"`
	Action     string `bson:"action" json:"action"`
	ActorID    int64  `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	ActorEmail string `bson:"actor_email,omitempty" json:"actor_email,omitempty"`
	Reason     string `bson:"reason,omitempty" json:"reason,omitempty"`
	Status     string `bson:"status,omitempty" json:"status,omitempty"`

	OriginDepartmentID   int64 `bson:"origin_department_id,omitempty" json:"origin_department_id,omitempty"`
	DestinationSectionID int64 `bson:"destination_section_id,omitempty" json:"destination_section_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
