package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/internal/data/repository"
	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/dto/response"
	"agcf-voyage/pkg/ticket"
	"agcf-voyage/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	// ReportDelay records a delay for a train and date, then notifies
	// holders of confirmed reservations. Notification failures are
	// logged and skipped, never fatal.
	ReportDelay(ctx context.Context, req *request.ReportDelayRequest) (*response.DelayReportResponse, error)
	ScheduleMaintenance(ctx context.Context, req *request.ScheduleMaintenanceRequest) (*response.MaintenanceResponse, error)
}

type adminService struct {
	repo       *repository.Repository
	dispatcher ticket.Dispatcher
	config     *utils.Config
	log        *zap.Logger
}

func NewAdminService(repo *repository.Repository, dispatcher ticket.Dispatcher, config *utils.Config, logger *zap.Logger) AdminService {
	return &adminService{
		repo:       repo,
		dispatcher: dispatcher,
		config:     config,
		log:        logger.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ReportDelay(ctx context.Context, req *request.ReportDelayRequest) (*response.DelayReportResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	trainID, _ := uuid.Parse(req.TrainID)
	travelDate, _ := time.Parse(time.DateOnly, req.TravelDate)

	train, err := s.repo.Train.FindByID(ctx, trainID)
	if err != nil {
		return nil, err
	}
	if train == nil {
		return nil, fmt.Errorf("%w: train %s", ErrNotFound, trainID)
	}

	delay := &entity.TrainDelay{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TrainID:    train.ID,
		TravelDate: travelDate,
		DelayMin:   req.DelayMin,
		Reason:     req.Reason,
		Status:     entity.DelayStatusReported,
	}

	if err := s.repo.Delay.Create(ctx, delay); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a delay is already reported for this train and date", ErrInvalidInput)
		}
		return nil, err
	}

	holders, err := s.repo.Reservation.FindConfirmedByTrainAndDate(ctx, train.ID, travelDate)
	if err != nil {
		return nil, err
	}

	notified := 0
	for _, res := range holders {
		if err := s.dispatcher.GenerateAndSend(ctx, res, ticket.KindDelay); err != nil {
			s.log.Warn("Delay notification failed",
				zap.String("code", res.Code),
				zap.String("email", res.UserEmail),
				zap.Error(err),
			)
			continue
		}
		notified++
	}

	s.log.Info("Delay reported",
		zap.String("train", train.Number),
		zap.String("travel_date", req.TravelDate),
		zap.Int("delay_min", req.DelayMin),
		zap.Int("notified", notified),
	)

	return &response.DelayReportResponse{
		DelayResponse:   response.DelayToResponse(delay),
		HoldersNotified: notified,
	}, nil
}

func (s *adminService) ScheduleMaintenance(ctx context.Context, req *request.ScheduleMaintenanceRequest) (*response.MaintenanceResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	trainID, _ := uuid.Parse(req.TrainID)
	startDate, _ := time.Parse(time.DateOnly, req.StartDate)
	endDate, _ := time.Parse(time.DateOnly, req.EndDate)
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", ErrInvalidInput)
	}

	train, err := s.repo.Train.FindByID(ctx, trainID)
	if err != nil {
		return nil, err
	}
	if train == nil {
		return nil, fmt.Errorf("%w: train %s", ErrNotFound, trainID)
	}

	window := &entity.MaintenanceWindow{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TrainID:     train.ID,
		Kind:        req.Kind,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      entity.MaintenanceStatusPlanned,
	}

	if err := s.repo.Maintenance.Create(ctx, window); err != nil {
		return nil, err
	}

	s.log.Info("Maintenance scheduled",
		zap.String("train", train.Number),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate),
	)

	out := response.MaintenanceToResponse(window)
	return &out, nil
}
