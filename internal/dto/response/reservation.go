package response

import (
	"time"

	"agcf-voyage/internal/data/entity"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	TrainID       uuid.UUID `json:"train_id"`
	TravelDate    string    `json:"travel_date"`
	Seats         int       `json:"seats"`
	UnitPrice     string    `json:"unit_price"`
	Discount      string    `json:"discount"`
	TotalPrice    string    `json:"total_price"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	PaidAt        *string   `json:"paid_at,omitempty"`

	// CardDowngraded flags that the requested discount card could not
	// be applied and the reservation went through at full price.
	CardDowngraded bool `json:"card_downgraded,omitempty"`
	// NotificationPending flags that the ticket could not be sent;
	// the reservation itself is fine.
	NotificationPending bool `json:"notification_pending,omitempty"`
}

func ReservationToResponse(res *entity.Reservation) ReservationResponse {
	out := ReservationResponse{
		ID:         res.ID,
		Code:       res.Code,
		TrainID:    res.TrainID,
		TravelDate: res.TravelDate.Format(time.DateOnly),
		Seats:      res.Seats,
		UnitPrice:  res.UnitPrice.StringFixed(2),
		Discount:   res.Discount.StringFixed(2),
		TotalPrice: res.TotalPrice.StringFixed(2),
		Status:     string(res.Status),
		CreatedAt:  res.CreatedAt,
	}

	if res.PaymentMethod != nil {
		out.PaymentMethod = string(*res.PaymentMethod)
	}
	if res.PaidAt != nil {
		paidAt := res.PaidAt.Format(time.RFC3339)
		out.PaidAt = &paidAt
	}

	return out
}

type PassengerResponse struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	BirthDate string `json:"birth_date"`
}

func PassengerToResponse(p *entity.Passenger) PassengerResponse {
	return PassengerResponse{
		LastName:  p.LastName,
		FirstName: p.FirstName,
		BirthDate: p.BirthDate.Format(time.DateOnly),
	}
}

type ReservationDetailResponse struct {
	ReservationResponse
	Train      *TrainResponse      `json:"train,omitempty"`
	Passengers []PassengerResponse `json:"passengers"`
	Delay      *DelayResponse      `json:"delay,omitempty"`
}

type QuoteResponse struct {
	TrainID        uuid.UUID `json:"train_id"`
	Seats          int       `json:"seats"`
	UnitPrice      string    `json:"unit_price"`
	Discount       string    `json:"discount"`
	TotalPrice     string    `json:"total_price"`
	CardApplied    bool      `json:"card_applied"`
	CardDowngraded bool      `json:"card_downgraded,omitempty"`
}

type DiscountCardResponse struct {
	ID             uuid.UUID `json:"id"`
	CardNumber     string    `json:"card_number"`
	Name           string    `json:"name"`
	Kind           string    `json:"kind"`
	Percentage     string    `json:"percentage"`
	ExpirationDate string    `json:"expiration_date"`
	UsableToday    bool      `json:"usable_today"`
}

func CardToResponse(c *entity.UserDiscountCard, usableToday bool) DiscountCardResponse {
	return DiscountCardResponse{
		ID:             c.ID,
		CardNumber:     c.CardNumber,
		Name:           c.Type.Name,
		Kind:           c.Type.Kind,
		Percentage:     c.Type.Percentage.StringFixed(2),
		ExpirationDate: c.ExpirationDate.Format(time.DateOnly),
		UsableToday:    usableToday,
	}
}
