package repository

import (
	"context"
	"fmt"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, window *entity.MaintenanceWindow) error
	// IsUnderMaintenance reports whether a planned or in_progress
	// window covers the given travel date.
	IsUnderMaintenance(ctx context.Context, trainID uuid.UUID, date time.Time) (bool, error)
	FindByTrainID(ctx context.Context, trainID uuid.UUID) ([]*entity.MaintenanceWindow, error)
}

type maintenanceRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMaintenanceRepository(db database.Querier, log *zap.Logger) MaintenanceRepository {
	return &maintenanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "maintenance")),
	}
}

func (r *maintenanceRepository) Create(ctx context.Context, window *entity.MaintenanceWindow) error {
	query := `
		INSERT INTO maintenance_windows (id, train_id, kind, description, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		window.ID, window.TrainID, window.Kind, window.Description,
		window.StartDate, window.EndDate, window.Status, window.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create maintenance window", zap.Error(err))
		return fmt.Errorf("create maintenance window: %w", err)
	}

	return nil
}

func (r *maintenanceRepository) IsUnderMaintenance(ctx context.Context, trainID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM maintenance_windows
			WHERE train_id = $1
			  AND status IN ('planned', 'in_progress')
			  AND start_date <= $2 AND end_date >= $2
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, trainID, date).Scan(&exists); err != nil {
		r.log.Error("Failed to check maintenance", zap.Error(err), zap.String("train_id", trainID.String()))
		return false, fmt.Errorf("check maintenance: %w", err)
	}

	return exists, nil
}

func (r *maintenanceRepository) FindByTrainID(ctx context.Context, trainID uuid.UUID) ([]*entity.MaintenanceWindow, error) {
	query := `
		SELECT id, train_id, kind, description, start_date, end_date, status, created_at
		FROM maintenance_windows
		WHERE train_id = $1
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, trainID)
	if err != nil {
		r.log.Error("Failed to list maintenance windows", zap.Error(err))
		return nil, fmt.Errorf("list maintenance windows: %w", err)
	}
	defer rows.Close()

	var windows []*entity.MaintenanceWindow
	for rows.Next() {
		var w entity.MaintenanceWindow
		err := rows.Scan(&w.ID, &w.TrainID, &w.Kind, &w.Description,
			&w.StartDate, &w.EndDate, &w.Status, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance window: %w", err)
		}
		windows = append(windows, &w)
	}

	return windows, rows.Err()
}
