// internal/app/features/records/helpers.go
package records

import (
	"context"
	"errors"
	"slices"

	departmentstore "github.com/dalemusser/recordhub/internal/app/store/departments"
	recordstore "github.com/dalemusser/recordhub/internal/app/store/records"
	recordtagstore "github.com/dalemusser/recordhub/internal/app/store/recordtags"
	situationstore "github.com/dalemusser/recordhub/internal/app/store/situations"
	tagstore "github.com/dalemusser/recordhub/internal/app/store/tags"
	userstore "github.com/dalemusser/recordhub/internal/app/store/users"
	"github.com/dalemusser/recordhub/internal/app/system/actor"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/domain/lifecycle"
	"github.com/dalemusser/recordhub/internal/domain/models"
)

func (h *Handler) loadRecord(ctx context.Context, id int64) (models.Record, error) {
	rec, err := recordstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, recordstore.ErrNotFound) {
		return rec, apperr.NotFoundf("record %d not found", id)
	}
	if err != nil {
		return rec, apperr.Internalf(err, "load record %d", id)
	}
	return rec, nil
}

// resolveActor finds the user behind an actor field. field is the JSON name
// used in messages.
func (h *Handler) resolveActor(ctx context.Context, field string, ref actor.Ref) (models.User, error) {
	if ref.IsZero() {
		return models.User{}, apperr.Validationf("%s is required", field)
	}
	u, err := userstore.New(h.DB).Resolve(ctx, ref)
	if errors.Is(err, userstore.ErrNotFound) {
		return u, apperr.NotFoundf("%s: user %s not found", field, ref)
	}
	if err != nil {
		return u, apperr.Internalf(err, "resolve %s", field)
	}
	return u, nil
}

func (h *Handler) loadDepartment(ctx context.Context, id int64) (models.Department, error) {
	d, err := departmentstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, departmentstore.ErrNotFound) {
		return d, apperr.NotFoundf("department %d not found", id)
	}
	if err != nil {
		return d, apperr.Internalf(err, "load department %d", id)
	}
	return d, nil
}

// currentStatus returns the record's derived status. A record without a
// status log reads as pending.
func (h *Handler) currentStatus(ctx context.Context, recordID int64) (lifecycle.Status, error) {
	st, err := situationstore.New(h.DB).Current(ctx, recordID)
	if errors.Is(err, situationstore.ErrNoSituation) {
		return lifecycle.Pending, nil
	}
	if err != nil {
		return "", apperr.Internalf(err, "load situation of record %d", recordID)
	}
	return st, nil
}

// checkTags dedupes ids and verifies every tag exists.
func (h *Handler) checkTags(ctx context.Context, ids []int64) ([]int64, error) {
	uniq := slices.Clone(ids)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	if len(uniq) == 0 {
		return uniq, nil
	}

	found, err := tagstore.New(h.DB).GetByIDs(ctx, uniq)
	if err != nil {
		return nil, apperr.Internalf(err, "load tags")
	}
	if len(found) != len(uniq) {
		have := make(map[int64]bool, len(found))
		for _, t := range found {
			have[t.ID] = true
		}
		for _, id := range uniq {
			if !have[id] {
				return nil, apperr.NotFoundf("tag %d not found", id)
			}
		}
	}
	return uniq, nil
}

func (h *Handler) recordTags(ctx context.Context, recordID int64) ([]models.Tag, error) {
	ids, err := recordtagstore.New(h.DB).TagIDs(ctx, recordID)
	if err != nil {
		return nil, apperr.Internalf(err, "load tag links of record %d", recordID)
	}
	tags, err := tagstore.New(h.DB).GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internalf(err, "load tags of record %d", recordID)
	}
	return tags, nil
}

// views attaches the current situation to each record.
func (h *Handler) views(ctx context.Context, recs []models.Record) ([]recordView, error) {
	ids := make([]int64, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	current, err := situationstore.New(h.DB).CurrentFor(ctx, ids)
	if err != nil {
		return nil, apperr.Internalf(err, "load situations")
	}

	out := make([]recordView, len(recs))
	for i, r := range recs {
		st, ok := current[r.ID]
		if !ok {
			st = lifecycle.Pending
		}
		out[i] = recordView{Record: r, Situation: st}
	}
	return out, nil
}

// detail is the single-record view with tags.
func (h *Handler) detail(ctx context.Context, rec models.Record) (recordView, error) {
	st, err := h.currentStatus(ctx, rec.ID)
	if err != nil {
		return recordView{}, err
	}
	tags, err := h.recordTags(ctx, rec.ID)
	if err != nil {
		return recordView{}, err
	}
	return recordView{Record: rec, Situation: st, Tags: tags}, nil
}
