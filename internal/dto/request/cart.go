package request

type AddCartEntryRequest struct {
	TrainID    string `json:"train_id" validate:"required,uuid4"`
	TravelDate string `json:"travel_date" validate:"required,datetime=2006-01-02"`
	Seats      int    `json:"seats" validate:"required,min=1,max=10"`
	CardID     string `json:"card_id" validate:"omitempty,uuid4"`
}
