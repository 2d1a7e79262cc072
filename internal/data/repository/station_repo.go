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

type StationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Station, error)
	FindAll(ctx context.Context) ([]*entity.Station, error)
}

type stationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewStationRepository(db database.Querier, log *zap.Logger) StationRepository {
	return &stationRepository{
		db:  db,
		log: log.With(zap.String("repository", "station")),
	}
}

func (r *stationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Station, error) {
	query := `
		SELECT id, name, city, code, created_at
		FROM stations
		WHERE id = $1`

	var s entity.Station
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.City, &s.Code, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find station", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find station by id: %w", err)
	}

	return &s, nil
}

func (r *stationRepository) FindAll(ctx context.Context) ([]*entity.Station, error) {
	query := `
		SELECT id, name, city, code, created_at
		FROM stations
		ORDER BY city, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list stations", zap.Error(err))
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	var stations []*entity.Station
	for rows.Next() {
		var s entity.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.Code, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, &s)
	}

	return stations, rows.Err()
}
