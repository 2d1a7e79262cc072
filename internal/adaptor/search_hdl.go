package adaptor

import (
	"net/http"

	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/usecase"
	"agcf-voyage/pkg/utils"

	"go.uber.org/zap"
)

type SearchHandler struct {
	service usecase.SearchService
	log     *zap.Logger
}

func NewSearchHandler(service usecase.SearchService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log.With(zap.String("handler", "search")),
	}
}

// SearchTrains handles GET /api/search (public)
func (h *SearchHandler) SearchTrains(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.SearchTrainsRequest{
		OriginID:       query.Get("origin_id"),
		DestinationID:  query.Get("destination_id"),
		TravelDate:     query.Get("travel_date"),
		DepartureAfter: query.Get("departure_after"),
		WaypointID:     query.Get("waypoint_id"),
		Class:          query.Get("class"),
		MaxPrice:       query.Get("max_price"),
		SortBy:         query.Get("sort_by"),
		Page:           utils.ParseInt(query.Get("page"), 1),
	}

	results, err := h.service.SearchTrains(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "search trains")
		return
	}

	utils.ResponseSuccess(w, "success", results)
}
