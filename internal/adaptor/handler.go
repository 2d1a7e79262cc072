package adaptor

import (
	"errors"
	"net/http"

	"agcf-voyage/internal/usecase"
	"agcf-voyage/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog     *CatalogHandler
	Search      *SearchHandler
	Reservation *ReservationHandler
	Cart        *CartHandler
	Admin       *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog:     NewCatalogHandler(service.Catalog, log),
		Search:      NewSearchHandler(service.Search, log),
		Reservation: NewReservationHandler(service.Reservation, service.Card, log),
		Cart:        NewCartHandler(service.Cart, log),
		Admin:       NewAdminHandler(service.Admin, log),
	}
}

// handleServiceError maps domain errors to HTTP responses. Anything
// that is not a domain error is a 500 and gets logged in full.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, op string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidInput):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrCapacity):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, usecase.ErrUnavailable):
		utils.ResponseUnprocessable(w, err.Error())
	case errors.Is(err, usecase.ErrState):
		utils.ResponseConflict(w, err.Error())
	default:
		log.Error("Service error", zap.String("op", op), zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
