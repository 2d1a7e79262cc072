package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FareClass string

const (
	FareClassFirst  FareClass = "1"
	FareClassSecond FareClass = "2"
)

type Train struct {
	Base
	Number         string          `db:"number"`
	OriginID       uuid.UUID       `db:"origin_id"`
	DestinationID  uuid.UUID       `db:"destination_id"`
	DepartureTime  time.Time       `db:"departure_time"`
	ArrivalTime    time.Time       `db:"arrival_time"`
	DurationMin    int             `db:"duration_min"`
	Class          FareClass       `db:"class"`
	BasePrice      decimal.Decimal `db:"base_price"`
	SeatsAvailable int             `db:"seats_available"`
	CarCount       int             `db:"car_count"`
	Active         bool            `db:"active"`
}

// FormattedDuration renders the trip length as "2h35".
func (t *Train) FormattedDuration() string {
	return fmt.Sprintf("%dh%02d", t.DurationMin/60, t.DurationMin%60)
}
