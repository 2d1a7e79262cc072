package wire

import (
	"agcf-voyage/internal/adaptor"
	"agcf-voyage/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.AdminHandler,
	identity middleware.IdentityProvider,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.Authenticated(identity, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/delays - report a delay, notify holders
		r.Post("/delays", handler.ReportDelay)

		// POST /api/admin/maintenance - schedule a window
		r.Post("/maintenance", handler.ScheduleMaintenance)
	})
}
