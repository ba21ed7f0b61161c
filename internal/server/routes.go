package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tg_escrow/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", handler(s.getV1Deals))
			r.Get("/{id}", handler(s.getV1Deal))
			r.Post("/{id}/settle", handler(s.postV1DealSettle))
			r.Delete("/{id}", handler(s.deleteV1Deal))
		})

		r.Get("/users/{id}/stats", handler(s.getV1UserStats))
		r.Post("/operators", handler(s.postV1Operators))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
