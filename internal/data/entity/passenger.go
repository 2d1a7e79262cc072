package entity

import (
	"time"

	"github.com/google/uuid"
)

type Passenger struct {
	ID            uuid.UUID `db:"id"`
	ReservationID uuid.UUID `db:"reservation_id"`
	LastName      string    `db:"last_name"`
	FirstName     string    `db:"first_name"`
	BirthDate     time.Time `db:"birth_date"`
}
