package usecase

import (
	"agcf-voyage/internal/data/repository"
	"agcf-voyage/pkg/ticket"
	"agcf-voyage/pkg/utils"

	"go.uber.org/zap"
)

// Service aggregates all services.
type Service struct {
	Catalog     CatalogService
	Search      SearchService
	Card        CardService
	Reservation ReservationService
	Cart        CartService
	Admin       AdminService
}

// NewService initializes all services.
func NewService(repo *repository.Repository, dispatcher ticket.Dispatcher, config *utils.Config, logger *zap.Logger) *Service {
	reservation := NewReservationService(repo, dispatcher, config, logger)

	return &Service{
		Catalog:     NewCatalogService(repo, config, logger),
		Search:      NewSearchService(repo, config, logger),
		Card:        NewCardService(repo, config, logger),
		Reservation: reservation,
		Cart:        NewCartService(repo, reservation, config, logger),
		Admin:       NewAdminService(repo, dispatcher, config, logger),
	}
}
