package usecase

import (
	"context"
	"fmt"
	"time"

	"agcf-voyage/internal/data/repository"
	"agcf-voyage/internal/dto/response"
	"agcf-voyage/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListStations(ctx context.Context) ([]response.StationResponse, error)
	// GetTrain returns the train with its full ordered path, origin
	// and destination included.
	GetTrain(ctx context.Context, id uuid.UUID) (*response.TrainDetailResponse, error)
	ActivePromotions(ctx context.Context) ([]response.PromotionResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewCatalogService(repo *repository.Repository, config *utils.Config, logger *zap.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		config: config,
		log:    logger.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListStations(ctx context.Context) ([]response.StationResponse, error) {
	stations, err := s.repo.Station.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response.StationResponse, 0, len(stations))
	for _, station := range stations {
		out = append(out, response.StationToResponse(station))
	}

	return out, nil
}

func (s *catalogService) GetTrain(ctx context.Context, id uuid.UUID) (*response.TrainDetailResponse, error) {
	train, err := s.repo.Train.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if train == nil {
		return nil, fmt.Errorf("%w: train %s", ErrNotFound, id)
	}

	stops, err := s.repo.Stop.FindByTrainID(ctx, train.ID)
	if err != nil {
		return nil, err
	}

	path := make([]response.PathStop, 0, len(stops)+2)
	appendStation := func(stationID uuid.UUID, position int) error {
		station, err := s.repo.Station.FindByID(ctx, stationID)
		if err != nil {
			return err
		}
		if station == nil {
			return fmt.Errorf("%w: station %s", ErrNotFound, stationID)
		}
		path = append(path, response.PathStop{
			StationID: station.ID,
			Name:      station.Name,
			City:      station.City,
			Position:  position,
		})
		return nil
	}

	if err := appendStation(train.OriginID, 0); err != nil {
		return nil, err
	}
	for _, stop := range stops {
		if err := appendStation(stop.StationID, stop.Position); err != nil {
			return nil, err
		}
	}
	if err := appendStation(train.DestinationID, len(stops)+1); err != nil {
		return nil, err
	}

	windows, err := s.repo.Maintenance.FindByTrainID(ctx, train.ID)
	if err != nil {
		return nil, err
	}

	detail := &response.TrainDetailResponse{
		TrainResponse: response.TrainToResponse(train, path[0].Name, path[len(path)-1].Name),
		Path:          path,
	}
	for _, w := range windows {
		detail.Maintenance = append(detail.Maintenance, response.MaintenanceToResponse(w))
	}

	return detail, nil
}

func (s *catalogService) ActivePromotions(ctx context.Context) ([]response.PromotionResponse, error) {
	promotions, err := s.repo.Promotion.FindActive(ctx, utils.DateOnly(time.Now()))
	if err != nil {
		return nil, err
	}

	out := make([]response.PromotionResponse, 0, len(promotions))
	for _, promo := range promotions {
		out = append(out, response.PromotionToResponse(promo))
	}

	return out, nil
}
