// internal/domain/models/recordlinks.go
package models

import "time"

// RecordSection links a record to a section it was forwarded to.
type RecordSection struct {
	RecordID  int64     `bson:"record_id"`
	SectionID int64     `bson:"section_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// RecordTag links a record to a tag.
type RecordTag struct {
	RecordID  int64     `bson:"record_id"`
	TagID     int64     `bson:"tag_id"`
	CreatedAt time.Time `bson:"created_at"`
}
