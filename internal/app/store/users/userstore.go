package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	counterstore "github.com/dalemusser/recordhub/internal/app/store/counters"
	"github.com/dalemusser/recordhub/internal/app/system/actor"
	"github.com/dalemusser/recordhub/internal/app/system/normalize"
	"github.com/dalemusser/recordhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "users"

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

type Store struct {
	c   *mongo.Collection
	ids *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection), ids: counterstore.New(db)}
}

// Create inserts a user. Email is stored lowercased; the caller validates
// syntax and that the department exists.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	id, err := s.ids.Next(ctx, collection)
	if err != nil {
		return models.User{}, err
	}
	now := time.Now().UTC()
	u.ID = id
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByID loads a user by id.
func (s *Store) GetByID(ctx context.Context, id int64) (models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail looks up a user by case-insensitive email. Returns ErrNotFound if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email": normalize.Email(email)})
}

// Resolve loads the user an actor reference points at.
func (s *Store) Resolve(ctx context.Context, ref actor.Ref) (models.User, error) {
	switch {
	case ref.Email != "":
		return s.GetByEmail(ctx, ref.Email)
	case ref.ID > 0:
		return s.GetByID(ctx, ref.ID)
	default:
		return models.User{}, ErrNotFound
	}
}

// ListByDepartment returns the users of a department ordered by name.
func (s *Store) ListByDepartment(ctx context.Context, departmentID int64) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"department_id": departmentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}
