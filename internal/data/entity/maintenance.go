package entity

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceStatus string

const (
	MaintenanceStatusPlanned    MaintenanceStatus = "planned"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

// MaintenanceWindow takes a train out of service for a date range.
// Only planned and in_progress windows block bookings.
type MaintenanceWindow struct {
	BaseSimple
	TrainID     uuid.UUID         `db:"train_id"`
	Kind        string            `db:"kind"`
	Description string            `db:"description"`
	StartDate   time.Time         `db:"start_date"`
	EndDate     time.Time         `db:"end_date"`
	Status      MaintenanceStatus `db:"status"`
}
