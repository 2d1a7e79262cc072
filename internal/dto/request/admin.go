package request

type ReportDelayRequest struct {
	TrainID    string `json:"train_id" validate:"required,uuid4"`
	TravelDate string `json:"travel_date" validate:"required,datetime=2006-01-02"`
	DelayMin   int    `json:"delay_min" validate:"required,min=1"`
	Reason     string `json:"reason" validate:"omitempty,max=500"`
}

type ScheduleMaintenanceRequest struct {
	TrainID     string `json:"train_id" validate:"required,uuid4"`
	Kind        string `json:"kind" validate:"required,max=50"`
	Description string `json:"description" validate:"omitempty,max=500"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
}
