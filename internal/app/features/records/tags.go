// internal/app/features/records/tags.go
package records

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	recordtagstore "github.com/dalemusser/recordhub/internal/app/store/recordtags"
	tagstore "github.com/dalemusser/recordhub/internal/app/store/tags"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
)

// ServeTags handles GET /records/{id}/tags.
func (h *Handler) ServeTags(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.loadRecord(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	tags, err := h.recordTags(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	jsonio.OK(w, tags)
}

// HandleAddTag handles POST /records/{id}/add-tag {tag_id}. Adding a tag the
// record already has succeeds without a second link.
func (h *Handler) HandleAddTag(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	var in addTagInput
	if err := jsonio.DecodeValid(r, &in, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.loadRecord(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	tag, err := tagstore.New(h.DB).GetByID(ctx, in.TagID)
	if errors.Is(err, tagstore.ErrNotFound) {
		h.ErrLog.Write(w, r, apperr.NotFoundf("tag %d not found", in.TagID))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "load tag"))
		return
	}

	created, err := recordtagstore.New(h.DB).Add(ctx, id, tag.ID)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "tag record"))
		return
	}
	if created {
		h.AuditLog.RecordTagged(ctx, r, id, tag.ID)
	}
	jsonio.OK(w, jsonio.Message{Message: "tag " + tag.Name + " added to record"})
}
