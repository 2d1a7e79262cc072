package wire

import (
	"agcf-voyage/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSearch(r chi.Router, handler *adaptor.SearchHandler) {
	// GET /api/search - public train search
	r.Get("/api/search", handler.SearchTrains)
}
