// internal/app/features/departments/departments.go
package departments

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	departmentstore "github.com/dalemusser/recordhub/internal/app/store/departments"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

type createDepartmentInput struct {
	Name string `json:"name" validate:"notblank,max=200"`
}

// ServeList handles GET /departments, sorted by name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	depts, err := departmentstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "list departments"))
		return
	}
	jsonio.OK(w, depts)
}

// HandleCreate handles POST /departments {name}.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createDepartmentInput
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

	d, err := departmentstore.New(h.DB).Create(ctx, in.Name)
	if errors.Is(err, departmentstore.ErrDuplicateDepartment) {
		h.ErrLog.Write(w, r, apperr.Wrap(apperr.Conflict, err, "a department with this name already exists"))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "create department"))
		return
	}

	h.AuditLog.DepartmentCreated(ctx, r, d)
	jsonio.OK(w, d)
}

// ServeByName handles GET /department?name=. The match is exact and
// case-sensitive.
func (h *Handler) ServeByName(w http.ResponseWriter, r *http.Request) {
	name := query.Get(r, "name")
	if name == "" {
		h.ErrLog.Write(w, r, apperr.Validationf("empty or missing parameter 'name'"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := departmentstore.New(h.DB).GetByName(ctx, name)
	if errors.Is(err, departmentstore.ErrNotFound) {
		h.ErrLog.Write(w, r, apperr.NotFoundf("could not find department %s", name))
		return
	}
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "find department by name"))
		return
	}
	jsonio.OK(w, d)
}
