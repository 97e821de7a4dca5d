// internal/app/store/recordtags/recordtagstore.go
package recordtagstore

import (
	"context"
	"time"

	"github.com/dalemusser/recordhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store links records to tags.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("record_tags")}
}

// Add attaches a tag to a record. Re-adding is a no-op.
func (s *Store) Add(ctx context.Context, recordID, tagID int64) (created bool, err error) {
	filter := bson.M{"record_id": recordID, "tag_id": tagID}
	update := bson.M{"$setOnInsert": models.RecordTag{
		RecordID:  recordID,
		TagID:     tagID,
		CreatedAt: time.Now().UTC(),
	}}
	res, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if wafflemongo.IsDup(err) {
			// a concurrent upsert won
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// Replace makes tagIDs the record's complete tag set.
func (s *Store) Replace(ctx context.Context, recordID int64, tagIDs []int64) error {
	keep := tagIDs
	if keep == nil {
		keep = []int64{}
	}
	if _, err := s.c.DeleteMany(ctx, bson.M{"record_id": recordID, "tag_id": bson.M{"$nin": keep}}); err != nil {
		return err
	}
	for _, id := range tagIDs {
		if _, err := s.Add(ctx, recordID, id); err != nil {
			return err
		}
	}
	return nil
}

// TagIDs returns the tags of a record in the order they were attached.
func (s *Store) TagIDs(ctx context.Context, recordID int64) ([]int64, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "tag_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"record_id": recordID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.RecordTag
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.TagID)
	}
	return ids, nil
}
