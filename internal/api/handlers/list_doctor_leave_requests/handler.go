package list_doctor_leave_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidStatus   = "некорректный статус заявки"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service LeaveService
	logger  Logger
}

func NewHandler(service LeaveService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/leave-requests
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/leave-requests - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /doctors/{id}/leave-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByDoctor(r.Context(), doctorID, actor, handlers.QueryString(r, "status"))
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrAccessDenied):
			h.logger.Warn("GET /doctors/{id}/leave-requests - Access denied: doctor_id=%d, user_id=%d", doctorID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, leaves.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/leave-requests - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /doctors/{id}/leave-requests - Failed to list leave requests: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/leave-requests - Leave requests retrieved successfully: doctor_id=%d, count=%d",
		doctorID, len(result.LeaveRequests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
