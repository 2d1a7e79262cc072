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
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type DelayRepository interface {
	// Create inserts a delay report. ErrDuplicate when the train and
	// date pair already has one.
	Create(ctx context.Context, delay *entity.TrainDelay) error
	FindByTrainAndDate(ctx context.Context, trainID uuid.UUID, date time.Time) (*entity.TrainDelay, error)
}

type delayRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewDelayRepository(db database.Querier, log *zap.Logger) DelayRepository {
	return &delayRepository{
		db:  db,
		log: log.With(zap.String("repository", "delay")),
	}
}

func (r *delayRepository) Create(ctx context.Context, delay *entity.TrainDelay) error {
	query := `
		INSERT INTO train_delays (id, train_id, travel_date, delay_min, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		delay.ID, delay.TrainID, delay.TravelDate, delay.DelayMin,
		delay.Reason, delay.Status, delay.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		r.log.Error("Failed to create delay", zap.Error(err))
		return fmt.Errorf("create delay: %w", err)
	}

	return nil
}

func (r *delayRepository) FindByTrainAndDate(ctx context.Context, trainID uuid.UUID, date time.Time) (*entity.TrainDelay, error) {
	query := `
		SELECT id, train_id, travel_date, delay_min, reason, status, created_at
		FROM train_delays
		WHERE train_id = $1 AND travel_date = $2`

	var d entity.TrainDelay
	err := r.db.QueryRow(ctx, query, trainID, date).Scan(
		&d.ID, &d.TrainID, &d.TravelDate, &d.DelayMin, &d.Reason, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find delay", zap.Error(err), zap.String("train_id", trainID.String()))
		return nil, fmt.Errorf("find delay: %w", err)
	}

	return &d, nil
}
