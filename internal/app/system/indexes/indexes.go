// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup and by the test harness. Each ensure* function
is idempotent. Errors are aggregated so every problem is visible and startup
can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	sets := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"departments", ensureDepartments},
		{"sections", ensureSections},
		{"users", ensureUsers},
		{"tags", ensureTags},
		{"records", ensureRecords},
		{"situations", ensureSituations},
		{"record_sections", ensureRecordSections},
		{"record_tags", ensureRecordTags},
		{"record_history", ensureRecordHistory},
		{"audit_events", ensureAuditEvents},
	}
	for _, s := range sets {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

// duplicateHints tells operators how to find rows that block a unique index.
var duplicateHints = map[string]string{
	"tags":        `db.tags.aggregate([{ $group: { _id: "$color", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`,
	"users":       `db.users.aggregate([{ $group: { _id: "$email", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`,
	"departments": `db.departments.aggregate([{ $group: { _id: "$name", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`,
}

type desired struct {
	model  mongo.IndexModel
	name   string
	unique *bool
	sig    string
}

func (d desired) isUnique() bool { return d.unique != nil && *d.unique }

func describe(m mongo.IndexModel) desired {
	d := desired{model: m, sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			d.name = *m.Options.Name
		}
		d.unique = m.Options.Unique
	}
	return d
}

func listIndexes(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// replace drops ex and creates d in its place.
func replace(ctx context.Context, coll *mongo.Collection, ex existingIndex, d desired) error {
	if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
		return fmt.Errorf("%s(%s): drop failed: %v", coll.Name(), d.name, err)
	}
	return create(ctx, coll, d)
}

func create(ctx context.Context, coll *mongo.Collection, d desired) error {
	if _, err := coll.Indexes().CreateOne(ctx, d.model); err != nil {
		if isDuplicateKeyErr(err) && d.isUnique() {
			helper := ""
			if h, ok := duplicateHints[coll.Name()]; ok {
				helper = ". Example finder:\n" + h
			}
			return fmt.Errorf("%s(%s): cannot create unique index (duplicates present)%s", coll.Name(), d.name, helper)
		}
		return fmt.Errorf("%s(%s): %w", coll.Name(), d.name, err)
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	existing := listIndexes(ctx, coll)

	for _, m := range models {
		d := describe(m)
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", d.name),
			zap.String("keys", d.sig),
			zap.Bool("unique", d.isUnique()),
		}

		ex, ok := existing[d.sig]
		switch {
		case ok && sameBoolPtr(d.unique, ex.Unique) && (d.name == "" || ex.Name == d.name):
			zap.L().Debug("reusing existing index", fields...)
			continue

		case ok:
			// Same keys but a different name or uniqueness: drop and recreate.
			if err := replace(ctx, coll, ex, d); err != nil {
				zap.L().Warn("index replace failed", append(fields, zap.Error(err))...)
				errs = append(errs, err.Error())
				continue
			}
			zap.L().Info("index dropped and recreated", append(fields, zap.Duration("took", time.Since(start)))...)
			continue
		}

		err := create(ctx, coll, d)
		if err != nil && isOptionsConflictErr(err) {
			// Another process created the same keys between List and CreateOne.
			if ex, ok := listIndexes(ctx, coll)[d.sig]; ok {
				if sameBoolPtr(d.unique, ex.Unique) {
					zap.L().Debug("reusing existing index (post-conflict)", fields...)
					continue
				}
				err = replace(ctx, coll, ex, d)
			}
		}
		if err != nil {
			zap.L().Warn("index ensure failed", append(fields, zap.Error(err))...)
			errs = append(errs, err.Error())
			continue
		}
		zap.L().Info("index ensured", append(fields, zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureDepartments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("departments"), []mongo.IndexModel{
		// Names are unique and matched exactly.
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_departments_name"),
		},
		// List order
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_departments_nameci__id"),
		},
	})
}

func ensureSections(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("sections"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "department_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_sections_dept_name"),
		},
	})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		// Email is stored lowercased and unique across all users.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "department_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_dept__id"),
		},
	})
}

func ensureTags(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("tags"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "color", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_tags_color"),
		},
	})
}

func ensureRecords(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("records"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "register_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_records_register_number"),
		},
		// SEI lookup is exact; not unique because several records may share a process.
		{
			Keys:    bson.D{{Key: "sei_number", Value: 1}},
			Options: options.Index().SetName("idx_records_sei"),
		},
		// Department listing and counts
		{
			Keys:    bson.D{{Key: "department_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_records_dept__id"),
		},
	})
}

func ensureSituations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("situations"), []mongo.IndexModel{
		// Current status = highest seq per record.
		{
			Keys:    bson.D{{Key: "record_id", Value: 1}, {Key: "seq", Value: -1}},
			Options: options.Index().SetName("idx_situations_record_seq"),
		},
	})
}

func ensureRecordSections(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("record_sections"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "record_id", Value: 1}, {Key: "section_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_record_sections"),
		},
		{
			Keys:    bson.D{{Key: "section_id", Value: 1}},
			Options: options.Index().SetName("idx_record_sections_section"),
		},
	})
}

func ensureRecordTags(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("record_tags"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "record_id", Value: 1}, {Key: "tag_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_record_tags"),
		},
		{
			Keys:    bson.D{{Key: "tag_id", Value: 1}},
			Options: options.Index().SetName("idx_record_tags_tag"),
		},
	})
}

func ensureRecordHistory(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("record_history"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "record_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_history_record__id"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("audit_events"), []mongo.IndexModel{
		// Query by time range (most recent first)
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "record_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_record_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "department_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_dept_timestamp"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_category_type_timestamp"),
		},
	})
}
