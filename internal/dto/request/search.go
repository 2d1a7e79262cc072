package request

type SearchTrainsRequest struct {
	OriginID       string `json:"origin_id" validate:"required,uuid4"`
	DestinationID  string `json:"destination_id" validate:"required,uuid4"`
	TravelDate     string `json:"travel_date" validate:"required,datetime=2006-01-02"`
	DepartureAfter string `json:"departure_after" validate:"omitempty,datetime=15:04"`
	WaypointID     string `json:"waypoint_id" validate:"omitempty,uuid4"`
	Class          string `json:"class" validate:"omitempty,oneof=1 2"`
	MaxPrice       string `json:"max_price" validate:"omitempty"`
	SortBy         string `json:"sort_by" validate:"omitempty,oneof=departure price duration"`
	Page           int    `json:"page" validate:"omitempty,min=1"`
}
