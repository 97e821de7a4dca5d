// internal/app/store/records/recordstore.go
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	counterstore "github.com/dalemusser/recordhub/internal/app/store/counters"
	"github.com/dalemusser/recordhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "records"

// registerAttempts bounds retries when two records are created in the same millisecond.
const registerAttempts = 5

var ErrNotFound = errors.New("record not found")

type Store struct {
	c   *mongo.Collection
	ids *counterstore.Store
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection(collection),
		ids: counterstore.New(db),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// RegisterNumber formats the register number of a record included at t.
func RegisterNumber(t time.Time) string {
	return fmt.Sprintf("%d/%d", t.UnixMilli(), t.Year())
}

// Create inserts a record, assigning its id, register number and inclusion date.
// The caller sets the intake fields, CreatedBy and DepartmentID.
func (s *Store) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	id, err := s.ids.Next(ctx, collection)
	if err != nil {
		return models.Record{}, err
	}
	now := s.now()
	rec.ID = id
	rec.InclusionDate = now
	rec.CreatedAt = now
	rec.UpdatedAt = now

	for attempt := 0; attempt < registerAttempts; attempt++ {
		rec.RegisterNumber = RegisterNumber(now.Add(time.Duration(attempt) * time.Millisecond))
		_, err = s.c.InsertOne(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if !wafflemongo.IsDup(err) {
			break
		}
	}
	return models.Record{}, fmt.Errorf("insert record: %w", err)
}

func (s *Store) GetByID(ctx context.Context, id int64) (models.Record, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindBySEI returns the first record whose sei_number equals sei exactly.
func (s *Store) FindBySEI(ctx context.Context, sei string) (models.Record, error) {
	return s.findOne(ctx, bson.M{"sei_number": sei})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.Record, error) {
	var rec models.Record
	if err := s.c.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, err
	}
	return rec, nil
}

// Find returns records matching the given filter with optional find options.
// The caller is responsible for building the filter and options (pagination, sorting).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Record, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Record{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of records matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Update applies a patch to the editable fields and returns the updated record.
// An empty patch only refreshes updated_at.
func (s *Store) Update(ctx context.Context, id int64, p models.RecordPatch) (models.Record, error) {
	set := bson.M{"updated_at": s.now()}
	put := func(field string, v *string) {
		if v != nil {
			set[field] = *v
		}
	}
	put("city", p.City)
	put("state", p.State)
	put("requester", p.Requester)
	put("document_type", p.DocumentType)
	put("document_number", p.DocumentNumber)
	put("document_date", p.DocumentDate)
	put("description", p.Description)
	put("sei_number", p.SEINumber)
	put("receipt_form", p.ReceiptForm)
	put("contact_info", p.ContactInfo)

	return s.findOneAndSet(ctx, id, set)
}

// SetDepartment moves the record to a new holder department.
func (s *Store) SetDepartment(ctx context.Context, id, departmentID int64) (models.Record, error) {
	return s.findOneAndSet(ctx, id, bson.M{"department_id": departmentID, "updated_at": s.now()})
}

func (s *Store) findOneAndSet(ctx context.Context, id int64, set bson.M) (models.Record, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec models.Record
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, err
	}
	return rec, nil
}
