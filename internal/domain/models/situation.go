// internal/domain/models/situation.go
package models

import "time"

// Situation is one entry in a record's append-only status log.
// Seq is globally increasing; the highest Seq for a record is its current status.
type Situation struct {
	ID        int64     `bson:"_id" json:"id"`
	RecordID  int64     `bson:"record_id" json:"record_id"`
	Status    string    `bson:"status" json:"status"`
	Seq       int64     `bson:"seq" json:"seq"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
