package testutil

import (
	"context"
	"net/http"
	"testing"

	departmentstore "github.com/dalemusser/recordhub/internal/app/store/departments"
	historystore "github.com/dalemusser/recordhub/internal/app/store/history"
	recordstore "github.com/dalemusser/recordhub/internal/app/store/records"
	recordtagstore "github.com/dalemusser/recordhub/internal/app/store/recordtags"
	sectionstore "github.com/dalemusser/recordhub/internal/app/store/sections"
	situationstore "github.com/dalemusser/recordhub/internal/app/store/situations"
	tagstore "github.com/dalemusser/recordhub/internal/app/store/tags"
	userstore "github.com/dalemusser/recordhub/internal/app/store/users"
	"github.com/dalemusser/recordhub/internal/domain/lifecycle"
	"github.com/dalemusser/recordhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) CreateDepartment(ctx context.Context, name string) models.Department {
	f.t.Helper()
	d, err := departmentstore.New(f.db).Create(ctx, name)
	if err != nil {
		f.t.Fatalf("failed to create test department: %v", err)
	}
	return d
}

func (f *Fixtures) CreateSection(ctx context.Context, departmentID int64, name string) models.Section {
	f.t.Helper()
	s, err := sectionstore.New(f.db).Create(ctx, departmentID, name)
	if err != nil {
		f.t.Fatalf("failed to create test section: %v", err)
	}
	return s
}

func (f *Fixtures) CreateUser(ctx context.Context, name, email string, departmentID int64) models.User {
	f.t.Helper()
	u, err := userstore.New(f.db).Create(ctx, models.User{Name: name, Email: email, DepartmentID: departmentID})
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

func (f *Fixtures) CreateTag(ctx context.Context, name, color string) models.Tag {
	f.t.Helper()
	tag, err := tagstore.New(f.db).Create(ctx, name, color)
	if err != nil {
		f.t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

// CreateRecord creates a record held by the creator's department with an
// initial pending situation and a created history entry.
func (f *Fixtures) CreateRecord(ctx context.Context, creator models.User) models.Record {
	f.t.Helper()
	return f.CreateRecordWith(ctx, creator, models.Record{
		City:           "Recife",
		State:          "PE",
		Requester:      "Test Requester",
		DocumentType:   "Ofício",
		DocumentNumber: "123",
		DocumentDate:   "2024-01-15",
		Description:    "Test record",
	})
}

// CreateRecordWith is CreateRecord with caller-supplied intake fields.
func (f *Fixtures) CreateRecordWith(ctx context.Context, creator models.User, rec models.Record) models.Record {
	f.t.Helper()
	rec.CreatedBy = creator.ID
	rec.DepartmentID = creator.DepartmentID
	created, err := recordstore.New(f.db).Create(ctx, rec)
	if err != nil {
		f.t.Fatalf("failed to create test record: %v", err)
	}
	if _, err := situationstore.New(f.db).Append(ctx, created.ID, lifecycle.Pending); err != nil {
		f.t.Fatalf("failed to create initial situation: %v", err)
	}
	if _, err := historystore.New(f.db).Append(ctx, models.HistoryEntry{
		RecordID:   created.ID,
		Action:     models.ActionCreated,
		ActorID:    creator.ID,
		ActorEmail: creator.Email,
	}); err != nil {
		f.t.Fatalf("failed to create history entry: %v", err)
	}
	return created
}

// SetStatus appends a situation to a record.
func (f *Fixtures) SetStatus(ctx context.Context, recordID int64, st lifecycle.Status) {
	f.t.Helper()
	if _, err := situationstore.New(f.db).Append(ctx, recordID, st); err != nil {
		f.t.Fatalf("failed to set status: %v", err)
	}
}

// TagRecord attaches a tag to a record.
func (f *Fixtures) TagRecord(ctx context.Context, recordID, tagID int64) {
	f.t.Helper()
	if _, err := recordtagstore.New(f.db).Add(ctx, recordID, tagID); err != nil {
		f.t.Fatalf("failed to tag record: %v", err)
	}
}
