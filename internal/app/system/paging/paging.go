// Package paging implements offset pagination for list endpoints.
package paging

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// MaxPageSize caps the configured page size.
const MaxPageSize = 200

// Page is a zero-based page of a fixed size.
type Page struct {
	Number int
	Size   int
}

// ParsePage parses a zero-based page number from a path segment.
// ok is false for non-numeric or negative input.
func ParsePage(s string, size int) (Page, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Page{}, false
	}
	return Page{Number: n, Size: ClampSize(size)}, true
}

// ClampSize bounds a page size to [1, MaxPageSize], substituting the
// default for non-positive values.
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int64 { return int64(p.Number) * int64(p.Size) }

// Find returns find options for this page sorted by sortField, then _id.
func (p Page) Find(sortField string, order int) *options.FindOptions {
	sort := bson.D{{Key: sortField, Value: order}}
	if sortField != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: order})
	}
	return options.Find().
		SetSort(sort).
		SetSkip(p.Offset()).
		SetLimit(int64(p.Size))
}
