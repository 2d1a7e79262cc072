package usecase

import (
	"context"
	"fmt"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/internal/data/repository"
	"agcf-voyage/internal/dto/response"
	"agcf-voyage/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CardService interface {
	// ListUserCards returns the user's non-expired cards with their
	// usability for today.
	ListUserCards(ctx context.Context, userID uuid.UUID) ([]response.DiscountCardResponse, error)
}

type cardService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewCardService(repo *repository.Repository, config *utils.Config, logger *zap.Logger) CardService {
	return &cardService{
		repo:   repo,
		config: config,
		log:    logger.With(zap.String("service", "card")),
	}
}

func (s *cardService) ListUserCards(ctx context.Context, userID uuid.UUID) ([]response.DiscountCardResponse, error) {
	today := utils.DateOnly(time.Now())

	cards, err := s.repo.Card.FindValidByUserID(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("list user cards: %w", err)
	}

	out := make([]response.DiscountCardResponse, 0, len(cards))
	for _, card := range cards {
		usable, err := cardUsable(ctx, s.repo, card, today, s.config.Booking.CardDailyLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, response.CardToResponse(card, usable))
	}

	return out, nil
}

// cardUsable decides whether a card may be applied on the given day:
// the card type is still sold, the card is not expired, and the daily
// usage cap is not reached. The same check runs at quote time and
// again inside the creation transaction, where the repo argument is
// the transaction-bound set.
func cardUsable(ctx context.Context, repo *repository.Repository, card *entity.UserDiscountCard, onDay time.Time, dailyLimit int) (bool, error) {
	if !card.Type.Active || card.Expired(onDay) {
		return false, nil
	}

	used, err := repo.Reservation.CountByCardOnDay(ctx, card.ID, onDay)
	if err != nil {
		return false, fmt.Errorf("count card usage: %w", err)
	}

	return used < dailyLimit, nil
}
