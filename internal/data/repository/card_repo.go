package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CardRepository interface {
	// FindByIDForUser returns the card only when it belongs to the
	// given user, with its type joined in.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.UserDiscountCard, error)
	// LockByIDForUser takes the card row FOR UPDATE so the daily-cap
	// count cannot race another booking. Call inside WithTx only.
	LockByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.UserDiscountCard, error)
	// FindValidByUserID lists the user's cards that are not expired
	// on the given day.
	FindValidByUserID(ctx context.Context, userID uuid.UUID, onDay time.Time) ([]*entity.UserDiscountCard, error)
}

type cardRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCardRepository(db database.Querier, log *zap.Logger) CardRepository {
	return &cardRepository{
		db:  db,
		log: log.With(zap.String("repository", "card")),
	}
}

const cardColumns = `c.id, c.user_id, c.card_type_id, c.card_number, c.expiration_date, c.added_at,
		t.id, t.kind, t.name, t.percentage, t.description, t.active`

func scanCard(row pgx.Row) (*entity.UserDiscountCard, error) {
	var c entity.UserDiscountCard
	err := row.Scan(
		&c.ID, &c.UserID, &c.CardTypeID, &c.CardNumber, &c.ExpirationDate, &c.AddedAt,
		&c.Type.ID, &c.Type.Kind, &c.Type.Name, &c.Type.Percentage, &c.Type.Description, &c.Type.Active,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.UserDiscountCard, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM user_discount_cards c
		JOIN discount_card_types t ON t.id = c.card_type_id
		WHERE c.id = $1 AND c.user_id = $2`

	card, err := scanCard(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find card", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find card for user: %w", err)
	}

	return card, nil
}

func (r *cardRepository) LockByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.UserDiscountCard, error) {
	// FOR UPDATE OF c: the card row is the serialization point, the
	// joined type row stays unlocked.
	query := `
		SELECT ` + cardColumns + `
		FROM user_discount_cards c
		JOIN discount_card_types t ON t.id = c.card_type_id
		WHERE c.id = $1 AND c.user_id = $2
		FOR UPDATE OF c`

	card, err := scanCard(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to lock card", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("lock card for user: %w", err)
	}

	return card, nil
}

func (r *cardRepository) FindValidByUserID(ctx context.Context, userID uuid.UUID, onDay time.Time) ([]*entity.UserDiscountCard, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM user_discount_cards c
		JOIN discount_card_types t ON t.id = c.card_type_id
		WHERE c.user_id = $1 AND c.expiration_date >= $2
		ORDER BY c.added_at`

	rows, err := r.db.Query(ctx, query, userID, onDay)
	if err != nil {
		r.log.Error("Failed to list cards", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list cards for user: %w", err)
	}
	defer rows.Close()

	var cards []*entity.UserDiscountCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}
