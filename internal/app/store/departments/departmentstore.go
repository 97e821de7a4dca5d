// internal/app/store/departments/departmentstore.go
package departmentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	counterstore "github.com/dalemusser/recordhub/internal/app/store/counters"
	"github.com/dalemusser/recordhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "departments"

var (
	ErrNotFound            = errors.New("department not found")
	ErrDuplicateDepartment = errors.New("a department with this name already exists")
)

type Store struct {
	c   *mongo.Collection
	ids *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection), ids: counterstore.New(db)}
}

func (s *Store) Create(ctx context.Context, name string) (models.Department, error) {
	id, err := s.ids.Next(ctx, collection)
	if err != nil {
		return models.Department{}, err
	}
	now := time.Now().UTC()
	d := models.Department{
		ID:        id,
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Department{}, ErrDuplicateDepartment
		}
		return models.Department{}, fmt.Errorf("insert department: %w", err)
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (models.Department, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByName matches the name exactly; "Finance" and "finance" are different departments.
func (s *Store) GetByName(ctx context.Context, name string) (models.Department, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.Department, error) {
	var d models.Department
	if err := s.c.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Department{}, ErrNotFound
		}
		return models.Department{}, err
	}
	return d, nil
}

// Exists reports whether a department with the given id exists.
func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns all departments ordered by folded name, then id.
func (s *Store) List(ctx context.Context) ([]models.Department, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Department{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
