package repository

import (
	"context"
	"errors"
	"fmt"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TrainRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Train, error)
	// LockByID takes the train row FOR UPDATE. Call inside WithTx only.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Train, error)
	// FindByRoute returns active trains running origin -> destination.
	FindByRoute(ctx context.Context, originID, destinationID uuid.UUID) ([]*entity.Train, error)
	// DebitSeats decrements availability, failing with
	// ErrInsufficientSeats when fewer than seats remain.
	DebitSeats(ctx context.Context, id uuid.UUID, seats int) error
	CreditSeats(ctx context.Context, id uuid.UUID, seats int) error
}

type trainRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTrainRepository(db database.Querier, log *zap.Logger) TrainRepository {
	return &trainRepository{
		db:  db,
		log: log.With(zap.String("repository", "train")),
	}
}

const trainColumns = `id, number, origin_id, destination_id, departure_time, arrival_time,
		duration_min, class, base_price, seats_available, car_count, active, created_at, updated_at`

func scanTrain(row pgx.Row) (*entity.Train, error) {
	var t entity.Train
	err := row.Scan(
		&t.ID, &t.Number, &t.OriginID, &t.DestinationID, &t.DepartureTime, &t.ArrivalTime,
		&t.DurationMin, &t.Class, &t.BasePrice, &t.SeatsAvailable, &t.CarCount, &t.Active,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trainRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Train, error) {
	query := `SELECT ` + trainColumns + ` FROM trains WHERE id = $1`

	train, err := scanTrain(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find train", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find train by id: %w", err)
	}

	return train, nil
}

func (r *trainRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Train, error) {
	query := `SELECT ` + trainColumns + ` FROM trains WHERE id = $1 FOR UPDATE`

	train, err := scanTrain(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to lock train", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("lock train by id: %w", err)
	}

	return train, nil
}

func (r *trainRepository) FindByRoute(ctx context.Context, originID, destinationID uuid.UUID) ([]*entity.Train, error) {
	query := `SELECT ` + trainColumns + `
		FROM trains
		WHERE origin_id = $1 AND destination_id = $2 AND active
		ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, originID, destinationID)
	if err != nil {
		r.log.Error("Failed to find trains by route", zap.Error(err))
		return nil, fmt.Errorf("find trains by route: %w", err)
	}
	defer rows.Close()

	var trains []*entity.Train
	for rows.Next() {
		train, err := scanTrain(rows)
		if err != nil {
			return nil, fmt.Errorf("scan train: %w", err)
		}
		trains = append(trains, train)
	}

	return trains, rows.Err()
}

func (r *trainRepository) DebitSeats(ctx context.Context, id uuid.UUID, seats int) error {
	// Conditional update: the WHERE clause is the capacity check, so
	// two concurrent debits can never oversell.
	query := `
		UPDATE trains
		SET seats_available = seats_available - $2, updated_at = now()
		WHERE id = $1 AND seats_available >= $2`

	tag, err := r.db.Exec(ctx, query, id, seats)
	if err != nil {
		r.log.Error("Failed to debit seats", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("debit seats: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrInsufficientSeats
	}

	return nil
}

func (r *trainRepository) CreditSeats(ctx context.Context, id uuid.UUID, seats int) error {
	query := `
		UPDATE trains
		SET seats_available = seats_available + $2, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, seats); err != nil {
		r.log.Error("Failed to credit seats", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("credit seats: %w", err)
	}

	return nil
}
