// internal/app/features/departments/routes.go
package departments

import "github.com/go-chi/chi/v5"

// Routes mounts the department routes under "/departments".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}/sections", h.ServeSections)
	r.Post("/{id}/sections", h.HandleCreateSection)
	r.Get("/{id}/users", h.ServeUsers)
	return r
}

// LookupRoutes mounts the by-name lookup under "/department".
func LookupRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeByName)
	return r
}
