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

type ReservationRepository interface {
	Create(ctx context.Context, res *entity.Reservation) error
	FindByCode(ctx context.Context, code string) (*entity.Reservation, error)
	FindByCodeAndEmail(ctx context.Context, code, email string) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	// CodeExists covers every row regardless of status; cancelled
	// reservations keep their code reserved forever.
	CodeExists(ctx context.Context, code string) (bool, error)
	// CountByCardOnDay counts pending/confirmed/used reservations
	// created with the card on the given calendar day.
	CountByCardOnDay(ctx context.Context, cardID uuid.UUID, day time.Time) (int, error)
	// Confirm stamps payment on a pending reservation. Returns false
	// when the row was not pending anymore.
	Confirm(ctx context.Context, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error)
	// MarkCancelled flips an active reservation to cancelled. Returns
	// false when the row was already cancelled or used.
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)
	FindConfirmedByTrainAndDate(ctx context.Context, trainID uuid.UUID, date time.Time) ([]*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReservationRepository(db database.Querier, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, user_id, user_email, train_id, travel_date, seats, card_id,
		unit_price, discount, total_price, status, payment_method, code, created_at, paid_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID, &res.UserID, &res.UserEmail, &res.TrainID, &res.TravelDate, &res.Seats,
		&res.CardID, &res.UnitPrice, &res.Discount, &res.TotalPrice, &res.Status,
		&res.PaymentMethod, &res.Code, &res.CreatedAt, &res.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		res.ID, res.UserID, res.UserEmail, res.TrainID, res.TravelDate, res.Seats,
		res.CardID, res.UnitPrice, res.Discount, res.TotalPrice, res.Status,
		res.PaymentMethod, res.Code, res.CreatedAt, res.PaidAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation", zap.Error(err))
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

func (r *reservationRepository) FindByCode(ctx context.Context, code string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE UPPER(code) = UPPER($1)`

	res, err := scanReservation(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find reservation", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find reservation by code: %w", err)
	}

	return res, nil
}

func (r *reservationRepository) FindByCodeAndEmail(ctx context.Context, code, email string) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE UPPER(code) = UPPER($1) AND LOWER(user_email) = LOWER($2)`

	res, err := scanReservation(r.db.QueryRow(ctx, query, code, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find reservation", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find reservation by code and email: %w", err)
	}

	return res, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list reservations", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list reservations for user: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reservations for user: %w", err)
	}
	return count, nil
}

func (r *reservationRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reservations WHERE UPPER(code) = UPPER($1))`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reservation code: %w", err)
	}
	return exists, nil
}

func (r *reservationRepository) CountByCardOnDay(ctx context.Context, cardID uuid.UUID, day time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE card_id = $1
		  AND created_at >= $2 AND created_at < $2 + INTERVAL '1 day'
		  AND status IN ('pending', 'confirmed', 'used')`

	var count int
	if err := r.db.QueryRow(ctx, query, cardID, day).Scan(&count); err != nil {
		r.log.Error("Failed to count card usage", zap.Error(err), zap.String("card_id", cardID.String()))
		return 0, fmt.Errorf("count card usage: %w", err)
	}

	return count, nil
}

func (r *reservationRepository) Confirm(ctx context.Context, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'confirmed', payment_method = $2, paid_at = $3
		WHERE id = $1 AND status = 'pending'`

	tag, err := r.db.Exec(ctx, query, id, method, paidAt)
	if err != nil {
		r.log.Error("Failed to confirm reservation", zap.Error(err), zap.String("id", id.String()))
		return false, fmt.Errorf("confirm reservation: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *reservationRepository) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'cancelled'
		WHERE id = $1 AND status IN ('pending', 'confirmed')`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to cancel reservation", zap.Error(err), zap.String("id", id.String()))
		return false, fmt.Errorf("cancel reservation: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *reservationRepository) FindConfirmedByTrainAndDate(ctx context.Context, trainID uuid.UUID, date time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE train_id = $1 AND travel_date = $2 AND status = 'confirmed'`

	rows, err := r.db.Query(ctx, query, trainID, date)
	if err != nil {
		r.log.Error("Failed to list confirmed reservations", zap.Error(err))
		return nil, fmt.Errorf("list confirmed reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}
