// internal/app/store/situations/situationstore.go
package situationstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	counterstore "github.com/dalemusser/recordhub/internal/app/store/counters"
	"github.com/dalemusser/recordhub/internal/domain/lifecycle"
	"github.com/dalemusser/recordhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "situations"

// ErrNoSituation is returned when a record has no status entries.
var ErrNoSituation = errors.New("record has no situation")

// Store is the append-only status log. Rows are never updated or deleted.
type Store struct {
	c   *mongo.Collection
	ids *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection), ids: counterstore.New(db)}
}

// Append adds a status entry. Seq comes from the shared counter so later
// appends always sort after earlier ones, across records.
func (s *Store) Append(ctx context.Context, recordID int64, status lifecycle.Status) (models.Situation, error) {
	if !status.Valid() {
		return models.Situation{}, lifecycle.ErrUnknownStatus
	}
	seq, err := s.ids.Next(ctx, collection)
	if err != nil {
		return models.Situation{}, err
	}
	sit := models.Situation{
		ID:        seq,
		RecordID:  recordID,
		Status:    status.String(),
		Seq:       seq,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, sit); err != nil {
		return models.Situation{}, fmt.Errorf("insert situation: %w", err)
	}
	return sit, nil
}

// ListByRecord returns a record's status log, oldest first.
func (s *Store) ListByRecord(ctx context.Context, recordID int64) ([]models.Situation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"record_id": recordID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Situation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Current derives a record's status from its log.
func (s *Store) Current(ctx context.Context, recordID int64) (lifecycle.Status, error) {
	log, err := s.ListByRecord(ctx, recordID)
	if err != nil {
		return "", err
	}
	st, ok := lifecycle.Current(log,
		func(e models.Situation) int64 { return e.Seq },
		func(e models.Situation) string { return e.Status },
	)
	if !ok {
		return "", ErrNoSituation
	}
	return st, nil
}

// CurrentFor derives the status of many records in one round trip.
// Records without entries are absent from the result.
func (s *Store) CurrentFor(ctx context.Context, recordIDs []int64) (map[int64]lifecycle.Status, error) {
	out := make(map[int64]lifecycle.Status, len(recordIDs))
	if len(recordIDs) == 0 {
		return out, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"record_id": bson.M{"$in": recordIDs}}}},
		{{Key: "$sort", Value: bson.D{{Key: "record_id", Value: 1}, {Key: "seq", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$record_id"},
			{Key: "status", Value: bson.M{"$first": "$status"}},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		RecordID int64  `bson:"_id"`
		Status   string `bson:"status"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.RecordID] = lifecycle.Status(r.Status)
	}
	return out, nil
}
