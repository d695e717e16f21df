package get_doctor_schedule

import (
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
)

const msgInvalidDoctorID = "некорректный ID врача"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/schedule - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	schedule, err := h.service.GetDoctorSchedule(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("GET /doctors/{id}/schedule - Failed to get schedule: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctors/{id}/schedule - Schedule retrieved successfully: doctor_id=%d, days=%d",
		doctorID, len(schedule.Days))
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
