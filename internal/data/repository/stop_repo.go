package repository

import (
	"context"
	"fmt"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TrainStopRepository interface {
	// FindByTrainID returns the intermediate stops ordered by position.
	FindByTrainID(ctx context.Context, trainID uuid.UUID) ([]*entity.TrainStop, error)
}

type trainStopRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTrainStopRepository(db database.Querier, log *zap.Logger) TrainStopRepository {
	return &trainStopRepository{
		db:  db,
		log: log.With(zap.String("repository", "train_stop")),
	}
}

func (r *trainStopRepository) FindByTrainID(ctx context.Context, trainID uuid.UUID) ([]*entity.TrainStop, error) {
	query := `
		SELECT id, train_id, station_id, position, passage_time
		FROM train_stops
		WHERE train_id = $1
		ORDER BY position`

	rows, err := r.db.Query(ctx, query, trainID)
	if err != nil {
		r.log.Error("Failed to find stops", zap.Error(err), zap.String("train_id", trainID.String()))
		return nil, fmt.Errorf("find stops by train: %w", err)
	}
	defer rows.Close()

	var stops []*entity.TrainStop
	for rows.Next() {
		var s entity.TrainStop
		if err := rows.Scan(&s.ID, &s.TrainID, &s.StationID, &s.Position, &s.PassageTime); err != nil {
			return nil, fmt.Errorf("scan stop: %w", err)
		}
		stops = append(stops, &s)
	}

	return stops, rows.Err()
}
