package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

// Mount registers the routes at the root and again under /api.
func (h *Handler) Mount(r chi.Router) {
	h.SetRoutes(r)
	r.Route("/api", h.SetRoutes)
}

func (h *Handler) SetRoutes(r chi.Router) {
	// public routes here
	r.Get("/health", h.HealthHandler)

	r.Group(func(r chi.Router) {
		if h.tokenAuth != nil {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)
		}

		r.Get("/sets", h.ListSets)
		r.Get("/sets/{set}", h.GetSet)
		r.Get("/sets/{set}/pull-rates", h.PullRates)
		r.Get("/sets/{set}/chase-cards", h.ChaseCards)

		r.Get("/cards/{card}", h.CardDetail)
		r.Get("/cards/{card}/price", h.CardPrice)
		r.Get("/cards/{card}/graded-prices", h.GradedPrices)

		r.Get("/search/cards", h.SearchCards)
	})
}

// InitAuth puts every route except /health behind HS256 bearer tokens.
// An empty secret leaves the API open.
func (h *Handler) InitAuth(secret string) {
	if secret == "" {
		h.tokenAuth = nil
		return
	}
	h.tokenAuth = jwtauth.New("HS256", []byte(secret), nil)
}
