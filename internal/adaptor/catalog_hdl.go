package adaptor

import (
	"net/http"

	"agcf-voyage/internal/usecase"
	"agcf-voyage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListStations handles GET /api/stations (public)
func (h *CatalogHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.service.ListStations(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list stations")
		return
	}

	utils.ResponseSuccess(w, "success", stations)
}

// GetTrain handles GET /api/trains/{id} (public)
func (h *CatalogHandler) GetTrain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid train id", nil)
		return
	}

	train, err := h.service.GetTrain(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get train")
		return
	}

	utils.ResponseSuccess(w, "success", train)
}

// GetPromotions handles GET /api/promotions (public)
func (h *CatalogHandler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.ActivePromotions(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get promotions")
		return
	}

	utils.ResponseSuccess(w, "success", promotions)
}
