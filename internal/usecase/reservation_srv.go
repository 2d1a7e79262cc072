package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/internal/data/repository"
	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/dto/response"
	"agcf-voyage/pkg/ticket"
	"agcf-voyage/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReservationService interface {
	// Quote prices a booking without committing anything.
	Quote(ctx context.Context, userID uuid.UUID, req *request.QuoteRequest) (*response.QuoteResponse, error)
	// Create books seats atomically: capacity debit, card recheck and
	// the pending reservation land in one transaction.
	Create(ctx context.Context, userID uuid.UUID, email string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	// Confirm stamps payment on a pending reservation owned by the user.
	Confirm(ctx context.Context, userID uuid.UUID, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error)
	// Cancel releases the seats. Public path, keyed by code + email.
	Cancel(ctx context.Context, code, email string) (*response.ReservationResponse, error)
	// Reschedule cancels the original and creates a confirmed copy on
	// the target train, atomically and with a fresh code.
	Reschedule(ctx context.Context, req *request.RescheduleRequest) (*response.ReservationResponse, error)
	// SetPassengers replaces the passenger list wholesale.
	SetPassengers(ctx context.Context, userID uuid.UUID, code string, req *request.SetPassengersRequest) error
	// Find resolves a reservation through the public code + email path.
	Find(ctx context.Context, code, email string) (*response.ReservationDetailResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page int) (*response.PaginatedResponse[response.ReservationResponse], error)
}

type reservationService struct {
	repo       *repository.Repository
	dispatcher ticket.Dispatcher
	config     *utils.Config
	log        *zap.Logger
}

func NewReservationService(repo *repository.Repository, dispatcher ticket.Dispatcher, config *utils.Config, logger *zap.Logger) ReservationService {
	return &reservationService{
		repo:       repo,
		dispatcher: dispatcher,
		config:     config,
		log:        logger.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Quote(ctx context.Context, userID uuid.UUID, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	trainID, _ := uuid.Parse(req.TrainID)
	train, err := s.repo.Train.FindByID(ctx, trainID)
	if err != nil {
		return nil, err
	}
	if train == nil {
		return nil, fmt.Errorf("%w: train %s", ErrNotFound, trainID)
	}

	percentage := decimal.Zero
	applied, downgraded := false, false
	if req.CardID != "" {
		cardID, _ := uuid.Parse(req.CardID)
		card, err := s.repo.Card.FindByIDForUser(ctx, cardID, userID)
		if err != nil {
			return nil, err
		}
		if card == nil {
			return nil, fmt.Errorf("%w: discount card %s", ErrNotFound, cardID)
		}

		usable, err := cardUsable(ctx, s.repo, card, utils.DateOnly(time.Now()), s.config.Booking.CardDailyLimit)
		if err != nil {
			return nil, err
		}
		if usable {
			percentage = card.Type.Percentage
			applied = true
		} else {
			downgraded = true
		}
	}

	discount, total := ComputePrice(train.BasePrice, req.Seats, percentage)

	return &response.QuoteResponse{
		TrainID:        train.ID,
		Seats:          req.Seats,
		UnitPrice:      train.BasePrice.StringFixed(2),
		Discount:       discount.StringFixed(2),
		TotalPrice:     total.StringFixed(2),
		CardApplied:    applied,
		CardDowngraded: downgraded,
	}, nil
}

func (s *reservationService) Create(ctx context.Context, userID uuid.UUID, email string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	trainID, _ := uuid.Parse(req.TrainID)
	travelDate, _ := time.Parse(time.DateOnly, req.TravelDate)
	if travelDate.Before(utils.DateOnly(time.Now())) {
		return nil, fmt.Errorf("%w: travel date is in the past", ErrInvalidInput)
	}

	var created *entity.Reservation
	var downgraded bool

	err := s.repo.WithTx(ctx, func(r *repository.Repository) error {
		train, err := r.Train.LockByID(ctx, trainID)
		if err != nil {
			return err
		}
		if train == nil {
			return fmt.Errorf("%w: train %s", ErrNotFound, trainID)
		}
		if !train.Active {
			return fmt.Errorf("%w: train %s is inactive", ErrUnavailable, train.Number)
		}

		underMaintenance, err := r.Maintenance.IsUnderMaintenance(ctx, train.ID, travelDate)
		if err != nil {
			return err
		}
		if underMaintenance {
			return fmt.Errorf("%w: train %s is under maintenance", ErrUnavailable, train.Number)
		}

		// Card eligibility is rechecked with the card row locked. Two
		// bookings on different trains share no train lock, so the card
		// row is what serializes the daily-cap count. A cap loss
		// downgrades to full price instead of failing.
		percentage := decimal.Zero
		var cardID *uuid.UUID
		if req.CardID != "" {
			id, _ := uuid.Parse(req.CardID)
			card, err := r.Card.LockByIDForUser(ctx, id, userID)
			if err != nil {
				return err
			}
			if card == nil {
				return fmt.Errorf("%w: discount card %s", ErrNotFound, id)
			}

			usable, err := cardUsable(ctx, r, card, utils.DateOnly(time.Now()), s.config.Booking.CardDailyLimit)
			if err != nil {
				return err
			}
			if usable {
				percentage = card.Type.Percentage
				cardID = &card.ID
			} else {
				downgraded = true
			}
		}

		if err := r.Train.DebitSeats(ctx, train.ID, req.Seats); err != nil {
			if errors.Is(err, repository.ErrInsufficientSeats) {
				return fmt.Errorf("%w: %d seats requested, %d available", ErrCapacity, req.Seats, train.SeatsAvailable)
			}
			return err
		}

		code, err := s.generateCode(ctx, r)
		if err != nil {
			return err
		}

		discount, total := ComputePrice(train.BasePrice, req.Seats, percentage)

		created = &entity.Reservation{
			ID:         uuid.New(),
			UserID:     userID,
			UserEmail:  strings.ToLower(email),
			TrainID:    train.ID,
			TravelDate: travelDate,
			Seats:      req.Seats,
			CardID:     cardID,
			UnitPrice:  train.BasePrice,
			Discount:   discount,
			TotalPrice: total,
			Status:     entity.ReservationStatusPending,
			Code:       code,
			CreatedAt:  time.Now(),
		}

		return r.Reservation.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("code", created.Code),
		zap.String("train_id", created.TrainID.String()),
		zap.Int("seats", created.Seats),
		zap.Bool("card_downgraded", downgraded),
	)

	resp := response.ReservationToResponse(created)
	resp.CardDowngraded = downgraded
	return &resp, nil
}

func (s *reservationService) Confirm(ctx context.Context, userID uuid.UUID, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	res, err := s.repo.Reservation.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if res == nil || res.UserID != userID {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, req.Code)
	}
	if res.Status != entity.ReservationStatusPending {
		return nil, fmt.Errorf("%w: reservation is %s", ErrState, res.Status)
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	paidAt := time.Now()

	// Conditional update guards against a concurrent confirm/cancel
	// between the read above and this write.
	confirmed, err := s.repo.Reservation.Confirm(ctx, res.ID, method, paidAt)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, fmt.Errorf("%w: reservation is no longer pending", ErrState)
	}

	res.Status = entity.ReservationStatusConfirmed
	res.PaymentMethod = &method
	res.PaidAt = &paidAt

	resp := response.ReservationToResponse(res)
	if err := s.dispatcher.GenerateAndSend(ctx, res, ticket.KindConfirmation); err != nil {
		s.log.Warn("Ticket dispatch failed after confirmation",
			zap.String("code", res.Code), zap.Error(err))
		resp.NotificationPending = true
	}

	return &resp, nil
}

func (s *reservationService) Cancel(ctx context.Context, code, email string) (*response.ReservationResponse, error) {
	var cancelled *entity.Reservation

	err := s.repo.WithTx(ctx, func(r *repository.Repository) error {
		res, err := r.Reservation.FindByCodeAndEmail(ctx, code, email)
		if err != nil {
			return err
		}
		if res == nil {
			return fmt.Errorf("%w: reservation %s", ErrNotFound, code)
		}
		if !res.Active() {
			return fmt.Errorf("%w: reservation is %s", ErrState, res.Status)
		}

		// Lock the train before the status flip so the credit and a
		// concurrent debit serialize.
		if _, err := r.Train.LockByID(ctx, res.TrainID); err != nil {
			return err
		}

		ok, err := r.Reservation.MarkCancelled(ctx, res.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: reservation is no longer active", ErrState)
		}

		if err := r.Train.CreditSeats(ctx, res.TrainID, res.Seats); err != nil {
			return err
		}

		res.Status = entity.ReservationStatusCancelled
		cancelled = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation cancelled",
		zap.String("code", cancelled.Code),
		zap.Int("seats", cancelled.Seats),
	)

	resp := response.ReservationToResponse(cancelled)
	return &resp, nil
}

func (s *reservationService) Reschedule(ctx context.Context, req *request.RescheduleRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	newTrainID, _ := uuid.Parse(req.TrainID)
	newDate, _ := time.Parse(time.DateOnly, req.TravelDate)
	if newDate.Before(utils.DateOnly(time.Now())) {
		return nil, fmt.Errorf("%w: travel date is in the past", ErrInvalidInput)
	}

	var created *entity.Reservation

	err := s.repo.WithTx(ctx, func(r *repository.Repository) error {
		orig, err := r.Reservation.FindByCodeAndEmail(ctx, req.Code, req.Email)
		if err != nil {
			return err
		}
		if orig == nil {
			return fmt.Errorf("%w: reservation %s", ErrNotFound, req.Code)
		}
		if !orig.Active() {
			return fmt.Errorf("%w: reservation is %s", ErrState, orig.Status)
		}

		// Both train rows are locked in ascending ID order so two
		// opposite reschedules cannot deadlock.
		var newTrain *entity.Train
		for _, id := range lockOrder(orig.TrainID, newTrainID) {
			train, err := r.Train.LockByID(ctx, id)
			if err != nil {
				return err
			}
			if train == nil && id == newTrainID {
				return fmt.Errorf("%w: train %s", ErrNotFound, id)
			}
			if id == newTrainID {
				newTrain = train
			}
		}

		if !newTrain.Active {
			return fmt.Errorf("%w: train %s is inactive", ErrUnavailable, newTrain.Number)
		}
		underMaintenance, err := r.Maintenance.IsUnderMaintenance(ctx, newTrain.ID, newDate)
		if err != nil {
			return err
		}
		if underMaintenance {
			return fmt.Errorf("%w: train %s is under maintenance", ErrUnavailable, newTrain.Number)
		}

		ok, err := r.Reservation.MarkCancelled(ctx, orig.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: reservation is no longer active", ErrState)
		}

		// Credit first, then debit: a same-train reschedule nets to
		// zero and can never fail for seats it already holds.
		if err := r.Train.CreditSeats(ctx, orig.TrainID, orig.Seats); err != nil {
			return err
		}
		if err := r.Train.DebitSeats(ctx, newTrain.ID, orig.Seats); err != nil {
			if errors.Is(err, repository.ErrInsufficientSeats) {
				return fmt.Errorf("%w: %d seats requested on train %s", ErrCapacity, orig.Seats, newTrain.Number)
			}
			return err
		}

		code, err := s.generateCode(ctx, r)
		if err != nil {
			return err
		}

		// Money and payment carry over unchanged; the copy goes
		// straight to confirmed. The cancelled original stays as the
		// audit trail.
		created = &entity.Reservation{
			ID:            uuid.New(),
			UserID:        orig.UserID,
			UserEmail:     orig.UserEmail,
			TrainID:       newTrain.ID,
			TravelDate:    newDate,
			Seats:         orig.Seats,
			CardID:        orig.CardID,
			UnitPrice:     orig.UnitPrice,
			Discount:      orig.Discount,
			TotalPrice:    orig.TotalPrice,
			Status:        entity.ReservationStatusConfirmed,
			PaymentMethod: orig.PaymentMethod,
			Code:          code,
			CreatedAt:     time.Now(),
			PaidAt:        orig.PaidAt,
		}

		return r.Reservation.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation rescheduled",
		zap.String("old_code", req.Code),
		zap.String("new_code", created.Code),
		zap.String("train_id", created.TrainID.String()),
	)

	resp := response.ReservationToResponse(created)
	if err := s.dispatcher.GenerateAndSend(ctx, created, ticket.KindModification); err != nil {
		s.log.Warn("Ticket dispatch failed after reschedule",
			zap.String("code", created.Code), zap.Error(err))
		resp.NotificationPending = true
	}

	return &resp, nil
}

func (s *reservationService) SetPassengers(ctx context.Context, userID uuid.UUID, code string, req *request.SetPassengersRequest) error {
	if errs := utils.ValidateStruct(req); errs != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	res, err := s.repo.Reservation.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if res == nil || res.UserID != userID {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, code)
	}
	if !res.Active() {
		return fmt.Errorf("%w: reservation is %s", ErrState, res.Status)
	}
	if len(req.Passengers) != res.Seats {
		return fmt.Errorf("%w: %d passengers for %d seats", ErrInvalidInput, len(req.Passengers), res.Seats)
	}

	passengers := make([]*entity.Passenger, 0, len(req.Passengers))
	for _, in := range req.Passengers {
		birthDate, err := time.Parse(time.DateOnly, in.BirthDate)
		if err != nil {
			return fmt.Errorf("%w: bad birth date %q", ErrInvalidInput, in.BirthDate)
		}
		passengers = append(passengers, &entity.Passenger{
			ID:            uuid.New(),
			ReservationID: res.ID,
			LastName:      in.LastName,
			FirstName:     in.FirstName,
			BirthDate:     birthDate,
		})
	}

	return s.repo.WithTx(ctx, func(r *repository.Repository) error {
		return r.Passenger.ReplaceForReservation(ctx, res.ID, passengers)
	})
}

func (s *reservationService) Find(ctx context.Context, code, email string) (*response.ReservationDetailResponse, error) {
	res, err := s.repo.Reservation.FindByCodeAndEmail(ctx, code, email)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, code)
	}

	detail := &response.ReservationDetailResponse{
		ReservationResponse: response.ReservationToResponse(res),
		Passengers:          []response.PassengerResponse{},
	}

	train, err := s.repo.Train.FindByID(ctx, res.TrainID)
	if err != nil {
		return nil, err
	}
	if train != nil {
		origin, destination := "", ""
		if st, err := s.repo.Station.FindByID(ctx, train.OriginID); err == nil && st != nil {
			origin = st.Name
		}
		if st, err := s.repo.Station.FindByID(ctx, train.DestinationID); err == nil && st != nil {
			destination = st.Name
		}
		tr := response.TrainToResponse(train, origin, destination)
		detail.Train = &tr
	}

	passengers, err := s.repo.Passenger.FindByReservationID(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range passengers {
		detail.Passengers = append(detail.Passengers, response.PassengerToResponse(p))
	}

	delay, err := s.repo.Delay.FindByTrainAndDate(ctx, res.TrainID, res.TravelDate)
	if err != nil {
		return nil, err
	}
	if delay != nil {
		d := response.DelayToResponse(delay)
		detail.Delay = &d
	}

	return detail, nil
}

func (s *reservationService) ListForUser(ctx context.Context, userID uuid.UUID, page int) (*response.PaginatedResponse[response.ReservationResponse], error) {
	if page < 1 {
		page = 1
	}
	perPage := s.config.Booking.HistoryPageSize

	total, err := s.repo.Reservation.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userID, perPage, utils.CalculateOffset(page, perPage))
	if err != nil {
		return nil, err
	}

	items := make([]response.ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		items = append(items, response.ReservationToResponse(res))
	}

	return &response.PaginatedResponse[response.ReservationResponse]{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: utils.CalculateTotalPages(total, perPage),
	}, nil
}

// generateCode draws codes until one is free. Codes stay reserved
// forever, cancelled reservations included, so the existence check
// covers every row.
func (s *reservationService) generateCode(ctx context.Context, r *repository.Repository) (string, error) {
	for attempt := 0; attempt < s.config.Booking.CodeMaxAttempts; attempt++ {
		code := utils.GenerateReservationCode(s.config.Booking.CodeLength)
		exists, err := r.Reservation.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("exhausted %d attempts to generate a unique code", s.config.Booking.CodeMaxAttempts)
}

func lockOrder(a, b uuid.UUID) []uuid.UUID {
	if a == b {
		return []uuid.UUID{a}
	}
	ids := []uuid.UUID{a, b}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
