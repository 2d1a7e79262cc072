package wire

import (
	"agcf-voyage/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, handler *adaptor.CatalogHandler) {
	// Public catalog
	r.Get("/api/stations", handler.ListStations)
	r.Get("/api/trains/{id}", handler.GetTrain)
	r.Get("/api/promotions", handler.GetPromotions)
}
