package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/usecase"
	"agcf-voyage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// cartKey scopes the cart to the caller. The client supplies its own
// key; there is no ambient session.
func cartKey(r *http.Request) string {
	return r.Header.Get("X-Cart-Key")
}

// Get handles GET /api/cart (protected)
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := cartKey(r)
	if key == "" {
		utils.ResponseBadRequest(w, "Missing X-Cart-Key header", nil)
		return
	}

	cart, err := h.service.Items(r.Context(), key)
	if err != nil {
		handleServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// Add handles POST /api/cart (protected)
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddCartEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.Add(r.Context(), cartKey(r), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to cart")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// Remove handles DELETE /api/cart/{index} (protected)
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	key := cartKey(r)
	if key == "" {
		utils.ResponseBadRequest(w, "Missing X-Cart-Key header", nil)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid cart index", nil)
		return
	}

	cart, err := h.service.Remove(r.Context(), key, index)
	if err != nil {
		handleServiceError(w, h.log, err, "remove from cart")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// Checkout handles POST /api/cart/checkout (protected)
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	email, _ := utils.GetUserEmailFromContext(r.Context())

	result, err := h.service.Checkout(r.Context(), cartKey(r), userID, email)
	if err != nil {
		handleServiceError(w, h.log, err, "checkout cart")
		return
	}

	utils.ResponseCreated(w, "success", result)
}
