// internal/app/features/records/status.go
package records

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	historystore "github.com/dalemusser/recordhub/internal/app/store/history"
	situationstore "github.com/dalemusser/recordhub/internal/app/store/situations"
	"github.com/dalemusser/recordhub/internal/app/system/actor"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/recordhub/internal/domain/lifecycle"
	"github.com/dalemusser/recordhub/internal/domain/models"
)

// HandleStatus handles POST /records/{id}/status {situation}. Any known
// situation may be set directly.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	var in statusInput
	if err := jsonio.DecodeValid(r, &in, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	status, err := lifecycle.ParseStatus(in.Situation)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Validationf("unknown situation %q", in.Situation))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rec, err := h.loadRecord(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	err = h.Txn.Run(ctx, func(ctx context.Context) error {
		if _, err := situationstore.New(h.DB).Append(ctx, id, status); err != nil {
			return err
		}
		_, err := historystore.New(h.DB).Append(ctx, models.HistoryEntry{
			RecordID: id,
			Action:   models.ActionStatusChanged,
			Status:   status.String(),
		})
		return err
	})
	if err != nil {
		h.ErrLog.Write(w, r, classify(err, "set status"))
		return
	}

	h.AuditLog.RecordStatusChanged(ctx, r, id, status.String())
	jsonio.OK(w, recordView{Record: rec, Situation: status})
}

// HandleClose handles POST /records/{id}/close {closed_by, reason}.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	var in closeInput
	h.transition(w, r, &in, transition{
		actorField: "closed_by",
		actor:      func() actor.Ref { return in.ClosedBy },
		reason:     func() string { return in.Reason },
		check:      lifecycle.CheckClose,
		to:         lifecycle.Finished,
		action:     models.ActionClosed,
		audit: func(ctx context.Context, r *http.Request, recordID, actorID int64, reason string) {
			h.AuditLog.RecordClosed(ctx, r, recordID, actorID, reason)
		},
	})
}

// HandleReopen handles POST /records/{id}/reopen {reopened_by, reason}.
// Only finished records can be reopened; they return to pending.
func (h *Handler) HandleReopen(w http.ResponseWriter, r *http.Request) {
	var in reopenInput
	h.transition(w, r, &in, transition{
		actorField: "reopened_by",
		actor:      func() actor.Ref { return in.ReopenedBy },
		reason:     func() string { return in.Reason },
		check:      lifecycle.CheckReopen,
		to:         lifecycle.Pending,
		action:     models.ActionReopened,
		audit: func(ctx context.Context, r *http.Request, recordID, actorID int64, reason string) {
			h.AuditLog.RecordReopened(ctx, r, recordID, actorID, reason)
		},
	})
}

// transition describes a guarded status change. actor and reason read the
// decoded body.
type transition struct {
	actorField string
	actor      func() actor.Ref
	reason     func() string
	check      func(lifecycle.Status) error
	to         lifecycle.Status
	action     string
	audit      func(ctx context.Context, r *http.Request, recordID, actorID int64, reason string)
}

// transition runs a guarded change. The record's state is checked before
// the actor is resolved, so a finished record rejects a close regardless
// of who asks.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, body any, t transition) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if err := jsonio.Decode(r, body, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if t.actor().IsZero() {
		h.ErrLog.Write(w, r, apperr.Validationf("%s is required", t.actorField))
		return
	}
	if err := jsonio.Valid(body); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	reason := htmlsanitize.PlainText(t.reason())
	if reason == "" {
		h.ErrLog.Write(w, r, apperr.Validationf("reason is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var (
		rec  models.Record
		user models.User
	)
	err = h.Txn.Run(ctx, func(ctx context.Context) error {
		var err error
		if rec, err = h.loadRecord(ctx, id); err != nil {
			return err
		}
		current, err := h.currentStatus(ctx, id)
		if err != nil {
			return err
		}
		if err := t.check(current); err != nil {
			return transitionConflict(err)
		}
		if user, err = h.resolveActor(ctx, t.actorField, t.actor()); err != nil {
			return err
		}
		if _, err := situationstore.New(h.DB).Append(ctx, id, t.to); err != nil {
			return err
		}
		_, err = historystore.New(h.DB).Append(ctx, models.HistoryEntry{
			RecordID:   id,
			Action:     t.action,
			ActorID:    user.ID,
			ActorEmail: user.Email,
			Reason:     reason,
			Status:     t.to.String(),
		})
		return err
	})
	if err != nil {
		h.ErrLog.Write(w, r, classify(err, t.action+" record"))
		return
	}

	t.audit(ctx, r, id, user.ID, reason)
	jsonio.OK(w, recordView{Record: rec, Situation: t.to})
}

func transitionConflict(err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrAlreadyFinished):
		return apperr.Wrap(apperr.Conflict, err, "record is already finished")
	case errors.Is(err, lifecycle.ErrNotFinished):
		return apperr.Wrap(apperr.Conflict, err, "record is not finished")
	}
	return apperr.Wrap(apperr.Conflict, err, err.Error())
}
