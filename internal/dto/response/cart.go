package response

import (
	"github.com/google/uuid"
)

type CartEntryResponse struct {
	Index      int       `json:"index"`
	TrainID    uuid.UUID `json:"train_id"`
	TravelDate string    `json:"travel_date"`
	Seats      int       `json:"seats"`
	UnitPrice  string    `json:"unit_price"`
	Discount   string    `json:"discount"`
	TotalPrice string    `json:"total_price"`
}

type CartResponse struct {
	Entries []CartEntryResponse `json:"entries"`
	Total   string              `json:"total"`
}

// CheckoutFailure reports one cart entry that could not be booked.
// The entry stays in the cart.
type CheckoutFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type CheckoutResponse struct {
	Created []ReservationResponse `json:"created"`
	Failed  []CheckoutFailure     `json:"failed,omitempty"`
}
