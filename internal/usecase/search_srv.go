package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/internal/data/repository"
	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/dto/response"
	"agcf-voyage/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SearchService interface {
	SearchTrains(ctx context.Context, req *request.SearchTrainsRequest) (*response.PaginatedResponse[response.TrainResponse], error)
}

type searchService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewSearchService(repo *repository.Repository, config *utils.Config, logger *zap.Logger) SearchService {
	return &searchService{
		repo:   repo,
		config: config,
		log:    logger.With(zap.String("service", "search")),
	}
}

func (s *searchService) SearchTrains(ctx context.Context, req *request.SearchTrainsRequest) (*response.PaginatedResponse[response.TrainResponse], error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	originID, _ := uuid.Parse(req.OriginID)
	destinationID, _ := uuid.Parse(req.DestinationID)
	if originID == destinationID {
		return nil, fmt.Errorf("%w: origin and destination must differ", ErrInvalidInput)
	}

	travelDate, _ := time.Parse(time.DateOnly, req.TravelDate)
	if travelDate.Before(utils.DateOnly(time.Now())) {
		return nil, fmt.Errorf("%w: travel date is in the past", ErrInvalidInput)
	}

	var waypointID uuid.UUID
	if req.WaypointID != "" {
		waypointID, _ = uuid.Parse(req.WaypointID)
		if waypointID == originID || waypointID == destinationID {
			return nil, fmt.Errorf("%w: waypoint must differ from origin and destination", ErrInvalidInput)
		}
	}

	var maxPrice decimal.Decimal
	hasMaxPrice := req.MaxPrice != ""
	if hasMaxPrice {
		var err error
		maxPrice, err = decimal.NewFromString(req.MaxPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: max_price is not a number", ErrInvalidInput)
		}
	}

	candidates, err := s.repo.Train.FindByRoute(ctx, originID, destinationID)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	var matches []*entity.Train
	for _, train := range candidates {
		underMaintenance, err := s.repo.Maintenance.IsUnderMaintenance(ctx, train.ID, travelDate)
		if err != nil {
			return nil, err
		}
		if underMaintenance {
			continue
		}

		if req.DepartureAfter != "" {
			min, _ := time.Parse("15:04", req.DepartureAfter)
			if minutesOfDay(train.DepartureTime) < minutesOfDay(min) {
				continue
			}
		}

		if req.Class != "" && train.Class != entity.FareClass(req.Class) {
			continue
		}

		if hasMaxPrice && train.BasePrice.GreaterThan(maxPrice) {
			continue
		}

		if waypointID != uuid.Nil {
			onPath, err := s.passesThrough(ctx, train, waypointID)
			if err != nil {
				return nil, err
			}
			if !onPath {
				continue
			}
		}

		matches = append(matches, train)
	}

	sortTrains(matches, req.SortBy)

	perPage := s.config.Booking.SearchPageSize
	total := int64(len(matches))
	page := req.Page
	if page < 1 {
		page = 1
	}

	offset := utils.CalculateOffset(page, perPage)
	if offset > len(matches) {
		offset = len(matches)
	}
	end := offset + perPage
	if end > len(matches) {
		end = len(matches)
	}

	items := make([]response.TrainResponse, 0, end-offset)
	names := map[uuid.UUID]string{}
	for _, train := range matches[offset:end] {
		origin, err := s.stationName(ctx, names, train.OriginID)
		if err != nil {
			return nil, err
		}
		destination, err := s.stationName(ctx, names, train.DestinationID)
		if err != nil {
			return nil, err
		}
		items = append(items, response.TrainToResponse(train, origin, destination))
	}

	return &response.PaginatedResponse[response.TrainResponse]{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: utils.CalculateTotalPages(total, perPage),
	}, nil
}

// passesThrough checks that the waypoint sits strictly between the
// endpoints on the train's full ordered path.
func (s *searchService) passesThrough(ctx context.Context, train *entity.Train, waypointID uuid.UUID) (bool, error) {
	stops, err := s.repo.Stop.FindByTrainID(ctx, train.ID)
	if err != nil {
		return false, err
	}

	path := make([]uuid.UUID, 0, len(stops)+2)
	path = append(path, train.OriginID)
	for _, stop := range stops {
		path = append(path, stop.StationID)
	}
	path = append(path, train.DestinationID)

	idx := -1
	for i, stationID := range path {
		if stationID == waypointID {
			idx = i
			break
		}
	}

	return idx > 0 && idx < len(path)-1, nil
}

func (s *searchService) stationName(ctx context.Context, cache map[uuid.UUID]string, id uuid.UUID) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}

	station, err := s.repo.Station.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if station == nil {
		return "", fmt.Errorf("%w: station %s", ErrNotFound, id)
	}

	cache[id] = station.Name
	return station.Name, nil
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func sortTrains(trains []*entity.Train, by string) {
	switch by {
	case "price":
		sort.SliceStable(trains, func(i, j int) bool {
			return trains[i].BasePrice.LessThan(trains[j].BasePrice)
		})
	case "duration":
		sort.SliceStable(trains, func(i, j int) bool {
			return trains[i].DurationMin < trains[j].DurationMin
		})
	default:
		sort.SliceStable(trains, func(i, j int) bool {
			return minutesOfDay(trains[i].DepartureTime) < minutesOfDay(trains[j].DepartureTime)
		})
	}
}
