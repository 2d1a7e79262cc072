package request

type QuoteRequest struct {
	TrainID string `json:"train_id" validate:"required,uuid4"`
	Seats   int    `json:"seats" validate:"required,min=1,max=10"`
	CardID  string `json:"card_id" validate:"omitempty,uuid4"`
}

type CreateReservationRequest struct {
	TrainID    string `json:"train_id" validate:"required,uuid4"`
	TravelDate string `json:"travel_date" validate:"required,datetime=2006-01-02"`
	Seats      int    `json:"seats" validate:"required,min=1,max=10"`
	CardID     string `json:"card_id" validate:"omitempty,uuid4"`
}

type ConfirmReservationRequest struct {
	Code          string `json:"code" validate:"required,min=4,max=16"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card paypal"`
}

// ManageRequest identifies a reservation through the public path.
type ManageRequest struct {
	Code  string `json:"code" validate:"required,min=4,max=16"`
	Email string `json:"email" validate:"required,email"`
}

type RescheduleRequest struct {
	Code       string `json:"code" validate:"required,min=4,max=16"`
	Email      string `json:"email" validate:"required,email"`
	TrainID    string `json:"train_id" validate:"required,uuid4"`
	TravelDate string `json:"travel_date" validate:"required,datetime=2006-01-02"`
}

type PassengerInput struct {
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
}

type SetPassengersRequest struct {
	Passengers []PassengerInput `json:"passengers" validate:"required,min=1,dive"`
}
