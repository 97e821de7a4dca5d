// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/recordhub/internal/app/store/audit"
	"github.com/dalemusser/recordhub/internal/app/system/middleware"
	"github.com/dalemusser/recordhub/internal/app/system/ratelimit"
	"github.com/dalemusser/recordhub/internal/domain/models"
	"go.uber.org/zap"
)

// Destinations for a category of events.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off" // disabled
)

// Config holds audit logging configuration.
type Config struct {
	// Admin controls department, section, user and tag events.
	Admin string
	// Record controls record lifecycle events.
	Record string
}

// DefaultConfig logs everything everywhere.
func DefaultConfig() Config {
	return Config{Admin: All, Record: All}
}

// ValidSetting reports whether s is one of all, db, log or off.
func ValidSetting(s string) bool {
	switch s {
	case All, DB, Log, Off:
		return true
	}
	return false
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func id(v int64) *int64 { return &v }

func fmtID(v *int64) string { return strconv.FormatInt(*v, 10) }

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", fmtID(event.ActorID)))
	}
	if event.RecordID != nil {
		fields = append(fields, zap.String("record_id", fmtID(event.RecordID)))
	}
	if event.DepartmentID != nil {
		fields = append(fields, zap.String("department_id", fmtID(event.DepartmentID)))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAdmin:
		setting = l.config.Admin
	case audit.CategoryRecord:
		setting = l.config.Record
	default:
		setting = All
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}

	if setting == All || setting == DB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// base fills the request-derived fields of an event.
func base(r *http.Request, category, eventType string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		RequestID: middleware.GetRequestID(r.Context()),
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
}

// --- Admin Events ---

func (l *Logger) DepartmentCreated(ctx context.Context, r *http.Request, d models.Department) {
	e := base(r, audit.CategoryAdmin, audit.EventDepartmentCreated)
	e.DepartmentID = id(d.ID)
	e.Details = map[string]string{"name": d.Name}
	l.Log(ctx, e)
}

func (l *Logger) SectionCreated(ctx context.Context, r *http.Request, s models.Section) {
	e := base(r, audit.CategoryAdmin, audit.EventSectionCreated)
	e.DepartmentID = id(s.DepartmentID)
	e.Details = map[string]string{"section_id": strconv.FormatInt(s.ID, 10), "name": s.Name}
	l.Log(ctx, e)
}

func (l *Logger) UserCreated(ctx context.Context, r *http.Request, u models.User) {
	e := base(r, audit.CategoryAdmin, audit.EventUserCreated)
	e.DepartmentID = id(u.DepartmentID)
	e.Details = map[string]string{"user_id": strconv.FormatInt(u.ID, 10), "email": u.Email}
	l.Log(ctx, e)
}

func (l *Logger) TagCreated(ctx context.Context, r *http.Request, t models.Tag) {
	e := base(r, audit.CategoryAdmin, audit.EventTagCreated)
	e.Details = map[string]string{"tag_id": strconv.FormatInt(t.ID, 10), "color": t.Color}
	l.Log(ctx, e)
}

// TagUpdated logs a tag edit; fields lists the changed field names.
func (l *Logger) TagUpdated(ctx context.Context, r *http.Request, tagID int64, fields []string) {
	e := base(r, audit.CategoryAdmin, audit.EventTagUpdated)
	e.Details = map[string]string{"tag_id": strconv.FormatInt(tagID, 10), "fields": strings.Join(fields, ",")}
	l.Log(ctx, e)
}

// --- Record Events ---

func (l *Logger) RecordCreated(ctx context.Context, r *http.Request, rec models.Record) {
	e := base(r, audit.CategoryRecord, audit.EventRecordCreated)
	e.RecordID = id(rec.ID)
	e.ActorID = id(rec.CreatedBy)
	e.DepartmentID = id(rec.DepartmentID)
	e.Details = map[string]string{"register_number": rec.RegisterNumber}
	l.Log(ctx, e)
}

func (l *Logger) RecordForwarded(ctx context.Context, r *http.Request, recordID, actorID, originDeptID int64, dest models.Section) {
	e := base(r, audit.CategoryRecord, audit.EventRecordForwarded)
	e.RecordID = id(recordID)
	e.ActorID = id(actorID)
	e.DepartmentID = id(dest.DepartmentID)
	e.Details = map[string]string{
		"origin_department_id":   strconv.FormatInt(originDeptID, 10),
		"destination_section_id": strconv.FormatInt(dest.ID, 10),
	}
	l.Log(ctx, e)
}

func (l *Logger) RecordStatusChanged(ctx context.Context, r *http.Request, recordID int64, status string) {
	e := base(r, audit.CategoryRecord, audit.EventRecordStatusChanged)
	e.RecordID = id(recordID)
	e.Details = map[string]string{"status": status}
	l.Log(ctx, e)
}

func (l *Logger) RecordClosed(ctx context.Context, r *http.Request, recordID, actorID int64, reason string) {
	e := base(r, audit.CategoryRecord, audit.EventRecordClosed)
	e.RecordID = id(recordID)
	e.ActorID = id(actorID)
	e.Details = map[string]string{"reason": reason}
	l.Log(ctx, e)
}

func (l *Logger) RecordReopened(ctx context.Context, r *http.Request, recordID, actorID int64, reason string) {
	e := base(r, audit.CategoryRecord, audit.EventRecordReopened)
	e.RecordID = id(recordID)
	e.ActorID = id(actorID)
	e.Details = map[string]string{"reason": reason}
	l.Log(ctx, e)
}

// RecordEdited logs an edit; fields lists the changed field names.
func (l *Logger) RecordEdited(ctx context.Context, r *http.Request, recordID int64, fields []string) {
	e := base(r, audit.CategoryRecord, audit.EventRecordEdited)
	e.RecordID = id(recordID)
	e.Details = map[string]string{"fields": strings.Join(fields, ",")}
	l.Log(ctx, e)
}

func (l *Logger) RecordTagged(ctx context.Context, r *http.Request, recordID, tagID int64) {
	e := base(r, audit.CategoryRecord, audit.EventRecordTagged)
	e.RecordID = id(recordID)
	e.Details = map[string]string{"tag_id": strconv.FormatInt(tagID, 10)}
	l.Log(ctx, e)
}
