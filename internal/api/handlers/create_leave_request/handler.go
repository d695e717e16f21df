package create_leave_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgForbidden          = "подать заявку может только сам врач или администратор"
	msgInvalidDateRange   = "дата окончания раньше даты начала"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
	msgDateInPast         = "отпуск не может начинаться в прошлом"
	msgInvalidInput       = "некорректные данные заявки"
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

// Handle POST /api/v1/leave-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /leave-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateLeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /leave-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("POST /leave-requests - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrAccessDenied):
			h.logger.Warn("POST /leave-requests - Access denied: doctor_id=%d, user_id=%d", serviceReq.DoctorID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, leaves.ErrInvalidDateRange):
			h.logger.Warn("POST /leave-requests - Invalid date range: %s..%s", req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, leaves.ErrInvalidTimeRange):
			h.logger.Warn("POST /leave-requests - Invalid time range: %s-%s", serviceReq.StartTime, serviceReq.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, leaves.ErrDateInPast):
			h.logger.Warn("POST /leave-requests - Start date in past: %s", req.StartDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, leaves.ErrInvalidInput):
			h.logger.Warn("POST /leave-requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /leave-requests - Failed to create leave request: doctor_id=%d, error=%v", serviceReq.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /leave-requests - Leave request created successfully: leave_id=%d, doctor_id=%d, conflicts=%d",
		result.Leave.ID, result.Leave.DoctorID, len(result.ConflictingAppointments))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
