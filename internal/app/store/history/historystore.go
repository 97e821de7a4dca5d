// internal/app/store/history/historystore.go
package historystore

import (
	"context"
	"fmt"
	"time"

	counterstore "github.com/dalemusser/recordhub/internal/app/store/counters"
	"github.com/dalemusser/recordhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "record_history"

// Store is the append-only routing and status history of records.
type Store struct {
	c   *mongo.Collection
	ids *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection), ids: counterstore.New(db)}
}

// Append writes one history entry and returns it with id and timestamp set.
func (s *Store) Append(ctx context.Context, e models.HistoryEntry) (models.HistoryEntry, error) {
	id, err := s.ids.Next(ctx, collection)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	e.ID = id
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("insert history: %w", err)
	}
	return e, nil
}

// ListByRecord returns the history of a record, oldest first.
func (s *Store) ListByRecord(ctx context.Context, recordID int64) ([]models.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"record_id": recordID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.HistoryEntry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
