// internal/app/features/records/create.go
package records

import (
	"context"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	historystore "github.com/dalemusser/recordhub/internal/app/store/history"
	recordstore "github.com/dalemusser/recordhub/internal/app/store/records"
	recordtagstore "github.com/dalemusser/recordhub/internal/app/store/recordtags"
	situationstore "github.com/dalemusser/recordhub/internal/app/store/situations"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/recordhub/internal/domain/lifecycle"
	"github.com/dalemusser/recordhub/internal/domain/models"
)

// HandleCreate handles POST /records.
//
// The record is held by the creator's department, starts pending and gets
// a created history entry. Optional tag ids are attached in the same
// transaction.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := jsonio.Decode(r, &in, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.sanitize()
	if err := jsonio.Valid(&in); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	creator, err := h.resolveActor(ctx, "created_by", in.CreatedBy)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	tagIDs, err := h.checkTags(ctx, in.Tags)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	rec := in.record()
	rec.CreatedBy = creator.ID
	rec.DepartmentID = creator.DepartmentID

	var created models.Record
	err = h.Txn.Run(ctx, func(ctx context.Context) error {
		var err error
		created, err = recordstore.New(h.DB).Create(ctx, rec)
		if err != nil {
			return err
		}
		if _, err := situationstore.New(h.DB).Append(ctx, created.ID, lifecycle.Pending); err != nil {
			return err
		}
		if _, err := historystore.New(h.DB).Append(ctx, models.HistoryEntry{
			RecordID:   created.ID,
			Action:     models.ActionCreated,
			ActorID:    creator.ID,
			ActorEmail: creator.Email,
			Status:     lifecycle.Pending.String(),
		}); err != nil {
			return err
		}
		links := recordtagstore.New(h.DB)
		for _, tagID := range tagIDs {
			if _, err := links.Add(ctx, created.ID, tagID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "create record"))
		return
	}

	h.AuditLog.RecordCreated(ctx, r, created)

	view, err := h.detail(ctx, created)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	jsonio.OK(w, view)
}
