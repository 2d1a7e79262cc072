package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agcf-voyage/internal/data/repository"
	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/dto/response"
	"agcf-voyage/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartEntry is a staged booking. Prices here are estimates, the
// checkout revalidates and reprices every entry.
type CartEntry struct {
	TrainID    uuid.UUID
	TravelDate time.Time
	Seats      int
	CardID     *uuid.UUID
	UnitPrice  decimal.Decimal
	Discount   decimal.Decimal
	TotalPrice decimal.Decimal
}

type CartService interface {
	// Add stages a booking under the caller-supplied cart key.
	Add(ctx context.Context, key string, userID uuid.UUID, req *request.AddCartEntryRequest) (*response.CartResponse, error)
	// Remove drops the entry at index. Out of range is an input error.
	Remove(ctx context.Context, key string, index int) (*response.CartResponse, error)
	Items(ctx context.Context, key string) (*response.CartResponse, error)
	// Checkout books every staged entry, one reservation each, with
	// partial success: failed entries stay in the cart.
	Checkout(ctx context.Context, key string, userID uuid.UUID, email string) (*response.CheckoutResponse, error)
}

type cartService struct {
	repo         *repository.Repository
	reservations ReservationService
	config       *utils.Config
	log          *zap.Logger

	mu    sync.Mutex
	carts map[string][]CartEntry
}

func NewCartService(repo *repository.Repository, reservations ReservationService, config *utils.Config, logger *zap.Logger) CartService {
	return &cartService{
		repo:         repo,
		reservations: reservations,
		config:       config,
		log:          logger.With(zap.String("service", "cart")),
		carts:        make(map[string][]CartEntry),
	}
}

func (s *cartService) Add(ctx context.Context, key string, userID uuid.UUID, req *request.AddCartEntryRequest) (*response.CartResponse, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: missing cart key", ErrInvalidInput)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	trainID, _ := uuid.Parse(req.TrainID)
	travelDate, _ := time.Parse(time.DateOnly, req.TravelDate)
	if travelDate.Before(utils.DateOnly(time.Now())) {
		return nil, fmt.Errorf("%w: travel date is in the past", ErrInvalidInput)
	}

	train, err := s.repo.Train.FindByID(ctx, trainID)
	if err != nil {
		return nil, err
	}
	if train == nil {
		return nil, fmt.Errorf("%w: train %s", ErrNotFound, trainID)
	}
	if !train.Active {
		return nil, fmt.Errorf("%w: train %s is inactive", ErrUnavailable, train.Number)
	}

	underMaintenance, err := s.repo.Maintenance.IsUnderMaintenance(ctx, train.ID, travelDate)
	if err != nil {
		return nil, err
	}
	if underMaintenance {
		return nil, fmt.Errorf("%w: train %s is under maintenance", ErrUnavailable, train.Number)
	}
	if train.SeatsAvailable < req.Seats {
		return nil, fmt.Errorf("%w: %d seats requested, %d available", ErrCapacity, req.Seats, train.SeatsAvailable)
	}

	percentage := decimal.Zero
	var cardID *uuid.UUID
	if req.CardID != "" {
		id, _ := uuid.Parse(req.CardID)
		card, err := s.repo.Card.FindByIDForUser(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		if card == nil {
			return nil, fmt.Errorf("%w: discount card %s", ErrNotFound, id)
		}

		usable, err := cardUsable(ctx, s.repo, card, utils.DateOnly(time.Now()), s.config.Booking.CardDailyLimit)
		if err != nil {
			return nil, err
		}
		if usable {
			percentage = card.Type.Percentage
		}
		// The card travels with the entry either way; checkout makes
		// the final call.
		cardID = &card.ID
	}

	discount, total := ComputePrice(train.BasePrice, req.Seats, percentage)

	entry := CartEntry{
		TrainID:    train.ID,
		TravelDate: travelDate,
		Seats:      req.Seats,
		CardID:     cardID,
		UnitPrice:  train.BasePrice,
		Discount:   discount,
		TotalPrice: total,
	}

	s.mu.Lock()
	s.carts[key] = append(s.carts[key], entry)
	entries := append([]CartEntry(nil), s.carts[key]...)
	s.mu.Unlock()

	return cartToResponse(entries), nil
}

func (s *cartService) Remove(ctx context.Context, key string, index int) (*response.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.carts[key]
	if index < 0 || index >= len(entries) {
		return nil, fmt.Errorf("%w: no cart entry at index %d", ErrInvalidInput, index)
	}

	entries = append(entries[:index], entries[index+1:]...)
	if len(entries) == 0 {
		delete(s.carts, key)
	} else {
		s.carts[key] = entries
	}

	return cartToResponse(append([]CartEntry(nil), entries...)), nil
}

func (s *cartService) Items(ctx context.Context, key string) (*response.CartResponse, error) {
	s.mu.Lock()
	entries := append([]CartEntry(nil), s.carts[key]...)
	s.mu.Unlock()

	return cartToResponse(entries), nil
}

func (s *cartService) Checkout(ctx context.Context, key string, userID uuid.UUID, email string) (*response.CheckoutResponse, error) {
	// Pop the entries while holding the lock. A concurrent checkout on
	// the same key finds the cart empty instead of booking everything
	// twice.
	s.mu.Lock()
	entries := s.carts[key]
	delete(s.carts, key)
	s.mu.Unlock()

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}

	out := &response.CheckoutResponse{}
	var remaining []CartEntry

	for i, entry := range entries {
		req := &request.CreateReservationRequest{
			TrainID:    entry.TrainID.String(),
			TravelDate: entry.TravelDate.Format(time.DateOnly),
			Seats:      entry.Seats,
		}
		if entry.CardID != nil {
			req.CardID = entry.CardID.String()
		}

		res, err := s.reservations.Create(ctx, userID, email, req)
		if err != nil {
			s.log.Warn("Cart entry failed at checkout",
				zap.String("cart_key", key),
				zap.Int("index", i),
				zap.Error(err),
			)
			out.Failed = append(out.Failed, response.CheckoutFailure{Index: i, Reason: err.Error()})
			remaining = append(remaining, entry)
			continue
		}

		out.Created = append(out.Created, *res)
	}

	// Failed entries go back in front of anything staged meanwhile.
	if len(remaining) > 0 {
		s.mu.Lock()
		s.carts[key] = append(remaining, s.carts[key]...)
		s.mu.Unlock()
	}

	return out, nil
}

func cartToResponse(entries []CartEntry) *response.CartResponse {
	out := &response.CartResponse{Entries: make([]response.CartEntryResponse, 0, len(entries))}

	total := decimal.Zero
	for i, entry := range entries {
		out.Entries = append(out.Entries, response.CartEntryResponse{
			Index:      i,
			TrainID:    entry.TrainID,
			TravelDate: entry.TravelDate.Format(time.DateOnly),
			Seats:      entry.Seats,
			UnitPrice:  entry.UnitPrice.StringFixed(2),
			Discount:   entry.Discount.StringFixed(2),
			TotalPrice: entry.TotalPrice.StringFixed(2),
		})
		total = total.Add(entry.TotalPrice)
	}

	out.Total = total.StringFixed(2)
	return out
}
