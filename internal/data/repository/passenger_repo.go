package repository

import (
	"context"
	"fmt"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PassengerRepository interface {
	// ReplaceForReservation swaps the full passenger list. Run inside
	// WithTx so the delete and inserts land together.
	ReplaceForReservation(ctx context.Context, reservationID uuid.UUID, passengers []*entity.Passenger) error
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.Passenger, error)
}

type passengerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPassengerRepository(db database.Querier, log *zap.Logger) PassengerRepository {
	return &passengerRepository{
		db:  db,
		log: log.With(zap.String("repository", "passenger")),
	}
}

func (r *passengerRepository) ReplaceForReservation(ctx context.Context, reservationID uuid.UUID, passengers []*entity.Passenger) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE reservation_id = $1`, reservationID); err != nil {
		r.log.Error("Failed to clear passengers", zap.Error(err), zap.String("reservation_id", reservationID.String()))
		return fmt.Errorf("clear passengers: %w", err)
	}

	query := `
		INSERT INTO passengers (id, reservation_id, last_name, first_name, birth_date)
		VALUES ($1, $2, $3, $4, $5)`

	for _, p := range passengers {
		_, err := r.db.Exec(ctx, query, p.ID, reservationID, p.LastName, p.FirstName, p.BirthDate)
		if err != nil {
			r.log.Error("Failed to insert passenger", zap.Error(err))
			return fmt.Errorf("insert passenger: %w", err)
		}
	}

	return nil
}

func (r *passengerRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.Passenger, error) {
	query := `
		SELECT id, reservation_id, last_name, first_name, birth_date
		FROM passengers
		WHERE reservation_id = $1
		ORDER BY last_name, first_name`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to list passengers", zap.Error(err), zap.String("reservation_id", reservationID.String()))
		return nil, fmt.Errorf("list passengers: %w", err)
	}
	defer rows.Close()

	var passengers []*entity.Passenger
	for rows.Next() {
		var p entity.Passenger
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.LastName, &p.FirstName, &p.BirthDate); err != nil {
			return nil, fmt.Errorf("scan passenger: %w", err)
		}
		passengers = append(passengers, &p)
	}

	return passengers, rows.Err()
}
