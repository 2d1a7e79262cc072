package wire

import (
	"agcf-voyage/internal/adaptor"
	"agcf-voyage/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	handler *adaptor.CartHandler,
	identity middleware.IdentityProvider,
	log *zap.Logger,
) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.Authenticated(identity, log))

		// GET /api/cart - current staged entries
		r.Get("/", handler.Get)

		// POST /api/cart - stage a booking
		r.Post("/", handler.Add)

		// DELETE /api/cart/{index} - drop one entry
		r.Delete("/{index}", handler.Remove)

		// POST /api/cart/checkout - book everything, partial success
		r.Post("/checkout", handler.Checkout)
	})
}
