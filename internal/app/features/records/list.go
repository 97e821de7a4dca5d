// internal/app/features/records/list.go
package records

import (
	"context"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	recordstore "github.com/dalemusser/recordhub/internal/app/store/records"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/paging"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServeList handles GET /records. An empty store answers 200 with [].
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recs, err := recordstore.New(h.DB).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "list records"))
		return
	}
	views, err := h.views(ctx, recs)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	jsonio.OK(w, views)
}

// ServePage handles POST /records/page/{page}. Pages are zero-based; the
// optional body {department_id} narrows to one holder department.
// A page past the end answers 204.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	page, ok := paging.ParsePage(chi.URLParam(r, "page"), h.PageSize)
	if !ok {
		h.ErrLog.Write(w, r, apperr.Validationf("page must be a non-negative integer"))
		return
	}

	var in pageInput
	if err := jsonio.DecodeValid(r, &in, true); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	if in.DepartmentID != nil {
		filter["department_id"] = *in.DepartmentID
	}

	store := recordstore.New(h.DB)
	recs, err := store.Find(ctx, filter, page.Find("_id", 1))
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "page records"))
		return
	}
	if len(recs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	total, err := store.Count(ctx, filter)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "count records"))
		return
	}
	views, err := h.views(ctx, recs)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	jsonio.OK(w, pageResult{
		Page:     page.Number,
		PageSize: page.Size,
		Total:    total,
		Records:  views,
	})
}

// ServeByDepartment handles GET /records/department/{id}: the records the
// department currently holds. 204 when it holds none.
func (h *Handler) ServeByDepartment(w http.ResponseWriter, r *http.Request) {
	deptID, err := jsonio.PathID(r, "id")
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.loadDepartment(ctx, deptID); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	recs, err := recordstore.New(h.DB).Find(ctx, bson.M{"department_id": deptID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "list department records"))
		return
	}
	if len(recs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	views, err := h.views(ctx, recs)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	jsonio.OK(w, views)
}

// ServeCount handles GET /count/records[?department_id=N].
func (h *Handler) ServeCount(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if raw := query.Get(r, "department_id"); raw != "" {
		deptID, err := jsonio.ParseID(raw, "department_id")
		if err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
		filter["department_id"] = deptID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := recordstore.New(h.DB).Count(ctx, filter)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "count records"))
		return
	}
	jsonio.OK(w, countResult{Count: n})
}
