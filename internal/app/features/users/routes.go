// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes mounts user creation under "/users".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	return r
}

// LookupRoutes mounts the by-email lookup under "/user".
func LookupRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/by-mail", h.HandleByMail)
	return r
}
