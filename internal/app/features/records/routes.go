// internal/app/features/records/routes.go
package records

import "github.com/go-chi/chi/v5"

// Routes mounts the record routes under the base path
// (typically "/records" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	// static paths before /{id}
	r.Get("/fields", h.ServeFields)
	r.Post("/with-sei", h.HandleWithSEI)
	r.Post("/page/{page}", h.ServePage)
	r.Get("/department/{id}", h.ServeByDepartment)

	r.Route("/{id}", func(rr chi.Router) {
		rr.Get("/", h.ServeRecord)
		rr.Get("/history", h.ServeHistory)
		rr.Get("/sections", h.ServeSections)
		rr.Get("/current-department", h.ServeCurrentDepartment)
		rr.Get("/tags", h.ServeTags)

		rr.Post("/forward", h.HandleForward)
		rr.Post("/status", h.HandleStatus)
		rr.Post("/close", h.HandleClose)
		rr.Post("/reopen", h.HandleReopen)
		rr.Post("/add-tag", h.HandleAddTag)
		rr.Post("/edit", h.HandleEdit)
	})

	return r
}

// CountRoutes mounts the record counter (typically under "/count").
func CountRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/records", h.ServeCount)
	return r
}
