// internal/app/features/departments/sections.go
package departments

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	departmentstore "github.com/dalemusser/recordhub/internal/app/store/departments"
	sectionstore "github.com/dalemusser/recordhub/internal/app/store/sections"
	userstore "github.com/dalemusser/recordhub/internal/app/store/users"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
)

type createSectionInput struct {
	Name string `json:"name" validate:"notblank,max=200"`
}

func (h *Handler) requireDepartment(ctx context.Context, id int64) error {
	ok, err := departmentstore.New(h.DB).Exists(ctx, id)
	if err != nil {
		return apperr.Internalf(err, "check department %d", id)
	}
	if !ok {
		return apperr.NotFoundf("department %d not found", id)
	}
	return nil
}

// ServeSections handles GET /departments/{id}/sections.
func (h *Handler) ServeSections(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.requireDepartment(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	sections, err := sectionstore.New(h.DB).ListByDepartment(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "list sections"))
		return
	}
	jsonio.OK(w, sections)
}

// HandleCreateSection handles POST /departments/{id}/sections {name}.
func (h *Handler) HandleCreateSection(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	var in createSectionInput
	if err := jsonio.Decode(r, &in, true); err != nil {
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

	if err := h.requireDepartment(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	s, err := sectionstore.New(h.DB).Create(ctx, id, in.Name)
	if errors.Is(err, sectionstore.ErrDuplicateSection) {
		h.ErrLog.Write(w, r, apperr.Wrap(apperr.Conflict, err, "the department already has a section with this name"))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "create section"))
		return
	}

	h.AuditLog.SectionCreated(ctx, r, s)
	jsonio.OK(w, s)
}

// ServeUsers handles GET /departments/{id}/users.
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	id, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.requireDepartment(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	list, err := userstore.New(h.DB).ListByDepartment(ctx, id)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "list users"))
		return
	}
	jsonio.OK(w, list)
}
