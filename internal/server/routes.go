package server

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all API routes, matching the endpoints named in
// internal/composer's <SERVER_APIS> block verbatim.
func (s *Server) setupRoutes() {
	r := s.router

	r.Route("/api", func(r chi.Router) {
		r.Route("/page/{name}", func(r chi.Router) {
			r.Get("/", s.getPage)
			r.Post("/transform", s.transformPage)
		})

		r.Post("/scripts/{id}", s.invokeScript)
	})
}
