// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	"github.com/dalemusser/recordhub/internal/app/store/audit"
	"github.com/dalemusser/recordhub/internal/app/system/apperr"
	"github.com/dalemusser/recordhub/internal/app/system/paging"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

const dateLayout = "2006-01-02"

// ServeList handles GET /audit, newest events first.
//
// Filters: category, event_type, record_id, department_id, actor_id,
// start_date and end_date (YYYY-MM-DD, end inclusive), page (zero-based).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, page, err := parseFilter(r)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	store := audit.New(h.DB)
	events, err := store.Query(ctx, filter)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "query audit events"))
		return
	}
	total, err := store.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.Write(w, r, apperr.Internalf(err, "count audit events"))
		return
	}

	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, toView(e))
	}
	jsonio.OK(w, listResult{
		Page:     page.Number,
		PageSize: page.Size,
		Total:    total,
		Events:   views,
	})
}

func parseFilter(r *http.Request) (audit.QueryFilter, paging.Page, error) {
	page := paging.Page{Size: pageSize}
	if raw := query.Get(r, "page"); raw != "" {
		p, ok := paging.ParsePage(raw, pageSize)
		if !ok {
			return audit.QueryFilter{}, page, apperr.Validationf("page must be a non-negative integer")
		}
		page = p
	}

	f := audit.QueryFilter{
		Category:  strings.TrimSpace(query.Get(r, "category")),
		EventType: strings.TrimSpace(query.Get(r, "event_type")),
		Limit:     int64(page.Size),
		Offset:    page.Offset(),
	}

	for name, dst := range map[string]**int64{
		"record_id":     &f.RecordID,
		"department_id": &f.DepartmentID,
		"actor_id":      &f.ActorID,
	} {
		raw := query.Get(r, name)
		if raw == "" {
			continue
		}
		id, err := jsonio.ParseID(raw, name)
		if err != nil {
			return f, page, err
		}
		*dst = &id
	}

	if raw := query.Get(r, "start_date"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return f, page, apperr.Validationf("start_date must be YYYY-MM-DD")
		}
		f.StartTime = &t
	}
	if raw := query.Get(r, "end_date"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return f, page, apperr.Validationf("end_date must be YYYY-MM-DD")
		}
		// end of day
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.EndTime = &end
	}
	return f, page, nil
}
