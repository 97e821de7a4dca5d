// internal/app/store/counters/counterstore.go
package counterstore

import (
	"context"
	"fmt"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("counters")}
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// Next returns the next value of the named sequence, starting at 1.
// Stores key their sequences by collection name.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out counter
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&out)
	if err != nil && wafflemongo.IsDup(err) {
		// two first-time upserts raced on the same _id; the loser retries as an update
		err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&out)
	}
	if err != nil {
		return 0, fmt.Errorf("next %s: %w", name, err)
	}
	return out.Seq, nil
}
