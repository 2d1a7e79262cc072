package entity

import (
	"time"

	"github.com/google/uuid"
)

// TrainStop is an intermediate halt on a train's route. Position 1 is
// the first stop after the origin; positions are unique per train.
type TrainStop struct {
	ID          uuid.UUID  `db:"id"`
	TrainID     uuid.UUID  `db:"train_id"`
	StationID   uuid.UUID  `db:"station_id"`
	Position    int        `db:"position"`
	PassageTime *time.Time `db:"passage_time"`
}
