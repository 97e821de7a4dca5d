// internal/app/features/records/edit.go
package records

import (
	"context"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	historystore "github.com/dalemusser/recordhub/internal/app/store/history"
	recordstore "github.com/dalemusser/recordhub/internal/app/store/records"
	recordtagstore "github.com/dalemusser/recordhub/internal/app/store/recordtags"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/recordhub/internal/domain/models"
)

// HandleEdit handles POST /records/{id}/edit. Only the intake fields present
// in the body change; a "tags" list replaces the tag set ([] clears it).
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	var in editInput
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

	// unknown record wins over an empty edit
	rec, err := h.loadRecord(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	fields := in.changedFields()
	if len(fields) == 0 {
		h.ErrLog.Write(w, r, apperr.Validationf("no fields to update"))
		return
	}
	var tagIDs []int64
	if in.Tags != nil {
		if tagIDs, err = h.checkTags(ctx, *in.Tags); err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
	}

	patch := in.patch()
	err = h.Txn.Run(ctx, func(ctx context.Context) error {
		if !patch.Empty() {
			updated, err := recordstore.New(h.DB).Update(ctx, id, patch)
			if err != nil {
				return err
			}
			rec = updated
		}
		if in.Tags != nil {
			if err := recordtagstore.New(h.DB).Replace(ctx, id, tagIDs); err != nil {
				return err
			}
		}
		_, err := historystore.New(h.DB).Append(ctx, models.HistoryEntry{
			RecordID: id,
			Action:   models.ActionEdited,
		})
		return err
	})
	if err != nil {
		h.ErrLog.Write(w, r, classify(err, "edit record"))
		return
	}

	h.AuditLog.RecordEdited(ctx, r, id, fields)

	view, err := h.detail(ctx, rec)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	jsonio.OK(w, view)
}
