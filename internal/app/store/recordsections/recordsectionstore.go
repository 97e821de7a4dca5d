// internal/app/store/recordsections/recordsectionstore.go
package recordsectionstore

import (
	"context"
	"time"

	"github.com/dalemusser/recordhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store links records to the sections they were forwarded to.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("record_sections")}
}

// Link associates a record with a section. Linking twice is a no-op;
// created reports whether a new link was written.
func (s *Store) Link(ctx context.Context, recordID, sectionID int64) (created bool, err error) {
	filter := bson.M{"record_id": recordID, "section_id": sectionID}
	update := bson.M{"$setOnInsert": models.RecordSection{
		RecordID:  recordID,
		SectionID: sectionID,
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

// SectionIDs returns the sections a record was forwarded to, in link order.
func (s *Store) SectionIDs(ctx context.Context, recordID int64) ([]int64, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "section_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"record_id": recordID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.RecordSection
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.SectionID)
	}
	return ids, nil
}

// Count returns the number of sections linked to a record.
func (s *Store) Count(ctx context.Context, recordID int64) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"record_id": recordID})
}
