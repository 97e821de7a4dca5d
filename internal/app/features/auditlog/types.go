// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/recordhub/internal/app/store/audit"
)

// pageSize is fixed; the audit trail is an operator view, not a client feed.
const pageSize = 50

type eventView struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"event_type"`
	ActorID       *int64            `json:"actor_id,omitempty"`
	RecordID      *int64            `json:"record_id,omitempty"`
	DepartmentID  *int64            `json:"department_id,omitempty"`
	RequestID     string            `json:"request_id,omitempty"`
	IP            string            `json:"ip"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

func toView(e audit.Event) eventView {
	return eventView{
		ID:            e.ID.Hex(),
		Timestamp:     e.Timestamp,
		Category:      e.Category,
		EventType:     e.EventType,
		ActorID:       e.ActorID,
		RecordID:      e.RecordID,
		DepartmentID:  e.DepartmentID,
		RequestID:     e.RequestID,
		IP:            e.IP,
		Success:       e.Success,
		FailureReason: e.FailureReason,
		Details:       e.Details,
	}
}

type listResult struct {
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int64       `json:"total"`
	Events   []eventView `json:"events"`
}
