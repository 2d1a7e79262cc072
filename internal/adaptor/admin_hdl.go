package adaptor

import (
	"encoding/json"
	"net/http"

	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/usecase"
	"agcf-voyage/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ReportDelay handles POST /api/admin/delays (admin)
func (h *AdminHandler) ReportDelay(w http.ResponseWriter, r *http.Request) {
	var req request.ReportDelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	report, err := h.service.ReportDelay(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "report delay")
		return
	}

	utils.ResponseCreated(w, "success", report)
}

// ScheduleMaintenance handles POST /api/admin/maintenance (admin)
func (h *AdminHandler) ScheduleMaintenance(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	window, err := h.service.ScheduleMaintenance(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "schedule maintenance")
		return
	}

	utils.ResponseCreated(w, "success", window)
}
