// internal/app/features/records/forward.go
package records

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	historystore "github.com/dalemusser/recordhub/internal/app/store/history"
	recordstore "github.com/dalemusser/recordhub/internal/app/store/records"
	recordsectionstore "github.com/dalemusser/recordhub/internal/app/store/recordsections"
	sectionstore "github.com/dalemusser/recordhub/internal/app/store/sections"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/recordhub/internal/domain/models"
)

// HandleForward handles POST /records/{id}/forward.
//
// origin_id must name the department that owns the destination section. On
// success the record is linked to the section, its holder becomes the
// section's department, and a forwarded entry is appended to its history.
// A mismatch is rejected before anything is written.
func (h *Handler) HandleForward(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	var in forwardInput
	if err := jsonio.Decode(r, &in, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if in.ForwardedBy.IsZero() {
		h.ErrLog.Write(w, r, apperr.Validationf("forwarded_by is required"))
		return
	}
	if err := jsonio.Valid(&in); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	forwarder, err := h.resolveActor(ctx, "forwarded_by", in.ForwardedBy)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if _, err := h.loadRecord(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	dest, err := sectionstore.New(h.DB).GetByID(ctx, in.DestinationID)
	if errors.Is(err, sectionstore.ErrNotFound) {
		h.ErrLog.Write(w, r, apperr.NotFoundf("section %d not found", in.DestinationID))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "load section"))
		return
	}
	if dest.DepartmentID != in.OriginID {
		h.ErrLog.Write(w, r, apperr.Conflictf("section %d belongs to department %d, not %d",
			dest.ID, dest.DepartmentID, in.OriginID))
		return
	}

	err = h.Txn.Run(ctx, func(ctx context.Context) error {
		if _, err := recordsectionstore.New(h.DB).Link(ctx, id, dest.ID); err != nil {
			return err
		}
		if _, err := recordstore.New(h.DB).SetDepartment(ctx, id, dest.DepartmentID); err != nil {
			return err
		}
		_, err = historystore.New(h.DB).Append(ctx, models.HistoryEntry{
			RecordID:             id,
			Action:               models.ActionForwarded,
			ActorID:              forwarder.ID,
			ActorEmail:           forwarder.Email,
			OriginDepartmentID:   in.OriginID,
			DestinationSectionID: dest.ID,
		})
		return err
	})
	if err != nil {
		h.ErrLog.Write(w, r, classify(err, "forward record"))
		return
	}

	h.AuditLog.RecordForwarded(ctx, r, id, forwarder.ID, in.OriginID, dest)
	jsonio.OK(w, jsonio.Message{Message: "record forwarded to: " + dest.Name})
}

// classify keeps apperr errors returned from inside a transaction and marks
// anything else Internal.
func classify(err error, op string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Internalf(err, "%s", op)
}
