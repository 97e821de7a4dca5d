// internal/app/features/tags/tags.go
package tags

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	tagstore "github.com/dalemusser/recordhub/internal/app/store/tags"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
)

type createTagInput struct {
	Name  string `json:"name" validate:"notblank,max=100"`
	Color string `json:"color" validate:"tagcolor"`
}

type editTagInput struct {
	Name  *string `json:"name" validate:"omitnil,notblank,max=100"`
	Color *string `json:"color" validate:"omitnil,tagcolor"`
}

const errColorTaken = "another tag already uses this color"

// ServeList handles GET /tags/all.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := tagstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "list tags"))
		return
	}
	jsonio.OK(w, list)
}

// HandleCreate handles POST /tag/new {name, color}.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createTagInput
	if err := jsonio.Decode(r, &in, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.Name = htmlsanitize.PlainText(in.Name)
	if err := jsonio.Valid(&in); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := tagstore.New(h.DB).Create(ctx, in.Name, in.Color)
	if errors.Is(err, tagstore.ErrDuplicateColor) {
		h.ErrLog.Write(w, r, apperr.Wrap(apperr.Conflict, err, errColorTaken))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "create tag"))
		return
	}

	h.AuditLog.TagCreated(ctx, r, t)
	jsonio.OK(w, t)
}

// HandleEdit handles POST /tag/{id}/edit {name?, color?}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	var in editTagInput
	if err := jsonio.Decode(r, &in, true); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.Name = htmlsanitize.PlainTextPtr(in.Name)
	if err := jsonio.Valid(&in); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := tagstore.New(h.DB)
	if in.Name == nil && in.Color == nil {
		// unknown tags still answer 404
		if _, err := store.GetByID(ctx, id); errors.Is(err, tagstore.ErrNotFound) {
			h.ErrLog.Write(w, r, apperr.NotFoundf("tag %d not found", id))
			return
		} else if err != nil {
			h.ErrLog.Write(w, r, apperr.Internalf(err, "load tag"))
			return
		}
		h.ErrLog.Write(w, r, apperr.Validationf("no fields to update"))
		return
	}

	_, err = store.Update(ctx, id, in.Name, in.Color)
	switch {
	case errors.Is(err, tagstore.ErrNotFound):
		h.ErrLog.Write(w, r, apperr.NotFoundf("tag %d not found", id))
		return
	case errors.Is(err, tagstore.ErrDuplicateColor):
		h.ErrLog.Write(w, r, apperr.Wrap(apperr.Conflict, err, errColorTaken))
		return
	case err != nil:
		h.ErrLog.Write(w, r, apperr.Internalf(err, "update tag"))
		return
	}

	var fields []string
	if in.Name != nil {
		fields = append(fields, "name")
	}
	if in.Color != nil {
		fields = append(fields, "color")
	}
	h.AuditLog.TagUpdated(ctx, r, id, fields)
	jsonio.OK(w, jsonio.Message{Message: "tag updated"})
}
