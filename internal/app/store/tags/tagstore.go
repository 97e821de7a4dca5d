// internal/app/store/tags/tagstore.go
package tagstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	counterstore "github.com/dalemusser/recordhub/internal/app/store/counters"
	"github.com/dalemusser/recordhub/internal/app/system/normalize"
	"github.com/dalemusser/recordhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "tags"

var (
	ErrNotFound       = errors.New("tag not found")
	ErrDuplicateColor = errors.New("a tag with this color already exists")
)

type Store struct {
	c   *mongo.Collection
	ids *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection), ids: counterstore.New(db)}
}

// Create inserts a tag. Colors are unique across tags.
func (s *Store) Create(ctx context.Context, name, color string) (models.Tag, error) {
	id, err := s.ids.Next(ctx, collection)
	if err != nil {
		return models.Tag{}, err
	}
	now := time.Now().UTC()
	t := models.Tag{
		ID:        id,
		Name:      name,
		Color:     normalize.Color(color),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Tag{}, ErrDuplicateColor
		}
		return models.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (models.Tag, error) {
	var t models.Tag
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Tag{}, ErrNotFound
		}
		return models.Tag{}, err
	}
	return t, nil
}

// Update changes the non-nil fields of a tag.
func (s *Store) Update(ctx context.Context, id int64, name, color *string) (models.Tag, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != nil {
		set["name"] = *name
	}
	if color != nil {
		set["color"] = normalize.Color(*color)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Tag
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	switch {
	case err == nil:
		return t, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.Tag{}, ErrNotFound
	case wafflemongo.IsDup(err):
		return models.Tag{}, ErrDuplicateColor
	default:
		return models.Tag{}, err
	}
}

// List returns every tag ordered by id.
func (s *Store) List(ctx context.Context) ([]models.Tag, error) {
	return s.find(ctx, bson.M{})
}

// GetByIDs loads tags by id, ordered by id. Unknown ids are skipped, so
// callers compare lengths to detect missing tags.
func (s *Store) GetByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Tag, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Tag{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
