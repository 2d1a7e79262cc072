package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusUsed      ReservationStatus = "used"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPaypal PaymentMethod = "paypal"
)

// Reservation is the booking record. UserEmail is denormalized at
// creation so the public code+email lookup needs no identity call.
type Reservation struct {
	ID            uuid.UUID         `db:"id"`
	UserID        uuid.UUID         `db:"user_id"`
	UserEmail     string            `db:"user_email"`
	TrainID       uuid.UUID         `db:"train_id"`
	TravelDate    time.Time         `db:"travel_date"`
	Seats         int               `db:"seats"`
	CardID        *uuid.UUID        `db:"card_id"`
	UnitPrice     decimal.Decimal   `db:"unit_price"`
	Discount      decimal.Decimal   `db:"discount"`
	TotalPrice    decimal.Decimal   `db:"total_price"`
	Status        ReservationStatus `db:"status"`
	PaymentMethod *PaymentMethod    `db:"payment_method"`
	Code          string            `db:"code"`
	CreatedAt     time.Time         `db:"created_at"`
	PaidAt        *time.Time        `db:"paid_at"`
}

// Active reports whether the reservation still holds seats.
func (r *Reservation) Active() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}
