package wire

import (
	"agcf-voyage/internal/adaptor"
	"agcf-voyage/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	handler *adaptor.ReservationHandler,
	identity middleware.IdentityProvider,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticated(identity, log))

		// POST /api/quote - price a booking without committing
		r.Post("/api/quote", handler.Quote)

		// GET /api/cards - the caller's discount cards
		r.Get("/api/cards", handler.ListCards)

		// POST /api/reservations - create a booking
		r.Post("/api/reservations", handler.Create)

		// GET /api/reservations - booking history
		r.Get("/api/reservations", handler.ListMine)

		// POST /api/reservations/confirm - pay and confirm
		r.Post("/api/reservations/confirm", handler.Confirm)

		// PUT /api/reservations/{code}/passengers - passenger details
		r.Put("/api/reservations/{code}/passengers", handler.SetPassengers)
	})

	// ==================== PUBLIC MANAGE ROUTES ====================
	// Keyed by reservation code + booking email, no account needed.
	r.Get("/api/manage", handler.Find)
	r.Post("/api/manage/cancel", handler.Cancel)
	r.Post("/api/manage/reschedule", handler.Reschedule)
}
