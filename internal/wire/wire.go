package wire

import (
	"net/http"

	"agcf-voyage/internal/adaptor"
	"agcf-voyage/internal/data/repository"
	"agcf-voyage/internal/usecase"
	"agcf-voyage/pkg/middleware"
	"agcf-voyage/pkg/ticket"
	"agcf-voyage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, dispatcher ticket.Dispatcher, identity middleware.IdentityProvider, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, dispatcher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, identity, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, identity middleware.IdentityProvider, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireCatalog(r, handler.Catalog)
	wireSearch(r, handler.Search)
	wireReservation(r, handler.Reservation, identity, logger)
	wireCart(r, handler.Cart, identity, logger)
	wireAdmin(r, handler.Admin, identity, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
