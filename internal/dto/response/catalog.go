package response

import (
	"time"

	"agcf-voyage/internal/data/entity"

	"github.com/google/uuid"
)

type StationResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
	Code string    `json:"code"`
}

func StationToResponse(s *entity.Station) StationResponse {
	return StationResponse{
		ID:   s.ID,
		Name: s.Name,
		City: s.City,
		Code: s.Code,
	}
}

type PromotionResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DiscountPct string    `json:"discount_pct"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	PromoCode   string    `json:"promo_code"`
}

func PromotionToResponse(p *entity.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		DiscountPct: p.DiscountPct.StringFixed(2),
		StartDate:   p.StartDate.Format(time.DateOnly),
		EndDate:     p.EndDate.Format(time.DateOnly),
		PromoCode:   p.PromoCode,
	}
}

type DelayResponse struct {
	TrainID    uuid.UUID `json:"train_id"`
	TravelDate string    `json:"travel_date"`
	DelayMin   int       `json:"delay_min"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
}

func DelayToResponse(d *entity.TrainDelay) DelayResponse {
	return DelayResponse{
		TrainID:    d.TrainID,
		TravelDate: d.TravelDate.Format(time.DateOnly),
		DelayMin:   d.DelayMin,
		Reason:     d.Reason,
		Status:     string(d.Status),
	}
}

type DelayReportResponse struct {
	DelayResponse
	HoldersNotified int `json:"holders_notified"`
}

type MaintenanceResponse struct {
	ID        uuid.UUID `json:"id"`
	TrainID   uuid.UUID `json:"train_id"`
	Kind      string    `json:"kind"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
}

func MaintenanceToResponse(w *entity.MaintenanceWindow) MaintenanceResponse {
	return MaintenanceResponse{
		ID:        w.ID,
		TrainID:   w.TrainID,
		Kind:      w.Kind,
		StartDate: w.StartDate.Format(time.DateOnly),
		EndDate:   w.EndDate.Format(time.DateOnly),
		Status:    string(w.Status),
	}
}
