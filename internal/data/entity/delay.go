package entity

import (
	"time"

	"github.com/google/uuid"
)

type DelayStatus string

const (
	DelayStatusReported DelayStatus = "reported"
	DelayStatusOngoing  DelayStatus = "ongoing"
	DelayStatusResolved DelayStatus = "resolved"
)

// TrainDelay records a reported delay for one train on one travel
// date. At most one row per train and date.
type TrainDelay struct {
	BaseSimple
	TrainID    uuid.UUID   `db:"train_id"`
	TravelDate time.Time   `db:"travel_date"`
	DelayMin   int         `db:"delay_min"`
	Reason     string      `db:"reason"`
	Status     DelayStatus `db:"status"`
}
