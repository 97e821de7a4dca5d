// internal/app/store/sections/sectionstore.go
package sectionstore

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

const collection = "sections"

var (
	ErrNotFound         = errors.New("section not found")
	ErrDuplicateSection = errors.New("a section with this name already exists in the department")
)

type Store struct {
	c   *mongo.Collection
	ids *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection), ids: counterstore.New(db)}
}

// Create adds a section to a department. The caller checks that the department exists.
func (s *Store) Create(ctx context.Context, departmentID int64, name string) (models.Section, error) {
	id, err := s.ids.Next(ctx, collection)
	if err != nil {
		return models.Section{}, err
	}
	sec := models.Section{
		ID:           id,
		Name:         name,
		DepartmentID: departmentID,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, sec); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Section{}, ErrDuplicateSection
		}
		return models.Section{}, fmt.Errorf("insert section: %w", err)
	}
	return sec, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (models.Section, error) {
	var sec models.Section
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Section{}, ErrNotFound
		}
		return models.Section{}, err
	}
	return sec, nil
}

// GetByName finds a section of a department by its exact name.
func (s *Store) GetByName(ctx context.Context, departmentID int64, name string) (models.Section, error) {
	var sec models.Section
	if err := s.c.FindOne(ctx, bson.M{"department_id": departmentID, "name": name}).Decode(&sec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Section{}, ErrNotFound
		}
		return models.Section{}, err
	}
	return sec, nil
}

func (s *Store) ListByDepartment(ctx context.Context, departmentID int64) ([]models.Section, error) {
	return s.find(ctx, bson.M{"department_id": departmentID})
}

// GetByIDs loads sections by id, ordered by id. Unknown ids are skipped.
func (s *Store) GetByIDs(ctx context.Context, ids []int64) ([]models.Section, error) {
	if len(ids) == 0 {
		return []models.Section{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Section, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Section{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
