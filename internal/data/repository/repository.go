package repository

import (
	"context"
	"fmt"

	"agcf-voyage/pkg/database"

	"go.uber.org/zap"
)

// Repository aggregates all repositories.
type Repository struct {
	Station     StationRepository
	Train       TrainRepository
	Stop        TrainStopRepository
	Maintenance MaintenanceRepository
	Delay       DelayRepository
	Card        CardRepository
	Reservation ReservationRepository
	Passenger   PassengerRepository
	Promotion   PromotionRepository

	// WithTx runs fn against a repository set bound to one database
	// transaction. The transaction commits when fn returns nil and
	// rolls back otherwise. Nested calls reuse the outer transaction.
	WithTx func(ctx context.Context, fn func(r *Repository) error) error
}

// NewRepository initializes all repositories over the pool.
func NewRepository(db database.PgxIface, logger *zap.Logger) *Repository {
	repo := newRepositorySet(db, logger)

	repo.WithTx = func(ctx context.Context, fn func(r *Repository) error) error {
		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		txRepo := newRepositorySet(tx, logger)
		txRepo.WithTx = func(ctx context.Context, nested func(r *Repository) error) error {
			return nested(txRepo)
		}

		if err := fn(txRepo); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	return repo
}

func newRepositorySet(db database.Querier, logger *zap.Logger) *Repository {
	return &Repository{
		Station:     NewStationRepository(db, logger),
		Train:       NewTrainRepository(db, logger),
		Stop:        NewTrainStopRepository(db, logger),
		Maintenance: NewMaintenanceRepository(db, logger),
		Delay:       NewDelayRepository(db, logger),
		Card:        NewCardRepository(db, logger),
		Reservation: NewReservationRepository(db, logger),
		Passenger:   NewPassengerRepository(db, logger),
		Promotion:   NewPromotionRepository(db, logger),
	}
}
