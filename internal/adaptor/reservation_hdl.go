package adaptor

import (
	"encoding/json"
	"net/http"

	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/usecase"
	"agcf-voyage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	cards   usecase.CardService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, cards usecase.CardService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		cards:   cards,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// Quote handles POST /api/quote (protected)
func (h *ReservationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	quote, err := h.service.Quote(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// Create handles POST /api/reservations (protected)
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	email, _ := utils.GetUserEmailFromContext(r.Context())

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.Create(r.Context(), userID, email, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", res)
}

// Confirm handles POST /api/reservations/confirm (protected)
func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ConfirmReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.Confirm(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm reservation")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// ListMine handles GET /api/reservations (protected)
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)

	reservations, err := h.service.ListForUser(r.Context(), userID, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// SetPassengers handles PUT /api/reservations/{code}/passengers (protected)
func (h *ReservationHandler) SetPassengers(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	code := chi.URLParam(r, "code")

	var req request.SetPassengersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetPassengers(r.Context(), userID, code, &req); err != nil {
		handleServiceError(w, h.log, err, "set passengers")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListCards handles GET /api/cards (protected)
func (h *ReservationHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	cards, err := h.cards.ListUserCards(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list cards")
		return
	}

	utils.ResponseSuccess(w, "success", cards)
}

// Find handles GET /api/manage?code=&email= (public)
func (h *ReservationHandler) Find(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	email := r.URL.Query().Get("email")
	if code == "" || email == "" {
		utils.ResponseBadRequest(w, "code and email are required", nil)
		return
	}

	detail, err := h.service.Find(r.Context(), code, email)
	if err != nil {
		handleServiceError(w, h.log, err, "find reservation")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// Cancel handles POST /api/manage/cancel (public)
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req request.ManageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	res, err := h.service.Cancel(r.Context(), req.Code, req.Email)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Reschedule handles POST /api/manage/reschedule (public)
func (h *ReservationHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	var req request.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.Reschedule(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reschedule reservation")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}
