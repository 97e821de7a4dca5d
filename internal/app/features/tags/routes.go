// internal/app/features/tags/routes.go
package tags

import "github.com/go-chi/chi/v5"

// Routes mounts single-tag routes under "/tag".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/new", h.HandleCreate)
	r.Post("/{id}/edit", h.HandleEdit)
	return r
}

// ListRoutes mounts the tag listing under "/tags".
func ListRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/all", h.ServeList)
	return r
}
