// internal/app/features/records/view.go
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
	"github.com/dalemusser/recordhub/internal/app/system/normalize"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/recordhub/internal/domain/models"
)

// ServeRecord handles GET /records/{id}.
func (h *Handler) ServeRecord(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.loadRecord(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	view, err := h.detail(ctx, rec)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	jsonio.OK(w, view)
}

// ServeFields handles GET /records/fields.
func (h *Handler) ServeFields(w http.ResponseWriter, r *http.Request) {
	jsonio.OK(w, models.RecordFields)
}

// HandleWithSEI handles POST /records/with-sei. The key is normalized the
// same way a stored sei_number is, then matched exactly.
func (h *Handler) HandleWithSEI(w http.ResponseWriter, r *http.Request) {
	var in seiInput
	if err := jsonio.Decode(r, &in, false); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.SEINumber = normalize.SEI(in.SEINumber)
	if err := jsonio.Valid(&in); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := recordstore.New(h.DB).FindBySEI(ctx, in.SEINumber)
	if errors.Is(err, recordstore.ErrNotFound) {
		jsonio.OK(w, seiResult{Found: false})
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "find record by sei"))
		return
	}

	view, err := h.detail(ctx, rec)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	jsonio.OK(w, seiResult{Found: true, Record: &view})
}

// ServeHistory handles GET /records/{id}/history, oldest entry first.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.loadRecord(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	entries, err := historystore.New(h.DB).ListByRecord(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "list history"))
		return
	}
	jsonio.OK(w, entries)
}

// ServeSections handles GET /records/{id}/sections: every section the
// record has been forwarded to.
func (h *Handler) ServeSections(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.loadRecord(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	ids, err := recordsectionstore.New(h.DB).SectionIDs(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "list section links"))
		return
	}
	sections, err := sectionstore.New(h.DB).GetByIDs(ctx, ids)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "load sections"))
		return
	}
	jsonio.OK(w, sections)
}

// ServeCurrentDepartment handles GET /records/{id}/current-department.
func (h *Handler) ServeCurrentDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.loadRecord(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	dept, err := h.loadDepartment(ctx, rec.DepartmentID)
	if err != nil {
		// A record pointing at a missing department is a data fault.
		if apperr.KindOf(err) == apperr.NotFound {
			err = apperr.Internalf(err, "record %d holder department %d missing", rec.ID, rec.DepartmentID)
		}
		h.ErrLog.Write(w, r, err)
		return
	}
	jsonio.OK(w, currentDepartmentResult{RecordID: rec.ID, Department: dept})
}
