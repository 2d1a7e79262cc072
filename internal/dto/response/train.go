package response

import (
	"agcf-voyage/internal/data/entity"

	"github.com/google/uuid"
)

type TrainResponse struct {
	ID             uuid.UUID `json:"id"`
	Number         string    `json:"number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  string    `json:"departure_time"`
	ArrivalTime    string    `json:"arrival_time"`
	Duration       string    `json:"duration"`
	Class          string    `json:"class"`
	BasePrice      string    `json:"base_price"`
	SeatsAvailable int       `json:"seats_available"`
}

// TrainToResponse maps a train; origin and destination names come
// from the caller because not every path has them loaded.
func TrainToResponse(t *entity.Train, origin, destination string) TrainResponse {
	return TrainResponse{
		ID:             t.ID,
		Number:         t.Number,
		Origin:         origin,
		Destination:    destination,
		DepartureTime:  t.DepartureTime.Format("15:04"),
		ArrivalTime:    t.ArrivalTime.Format("15:04"),
		Duration:       t.FormattedDuration(),
		Class:          string(t.Class),
		BasePrice:      t.BasePrice.StringFixed(2),
		SeatsAvailable: t.SeatsAvailable,
	}
}

// PathStop is one station on the full ordered route, origin and
// destination included.
type PathStop struct {
	StationID uuid.UUID `json:"station_id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Position  int       `json:"position"`
}

type TrainDetailResponse struct {
	TrainResponse
	Path        []PathStop            `json:"path"`
	Maintenance []MaintenanceResponse `json:"maintenance,omitempty"`
}
