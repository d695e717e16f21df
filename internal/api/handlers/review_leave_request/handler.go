package review_leave_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves"
)

const (
	msgInvalidLeaveID     = "некорректный ID заявки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса, ожидается decision: approve или reject"
	msgForbidden          = "доступно только администратору"
	msgNotFound           = "заявка не найдена"
	msgNotPending         = "заявка уже рассмотрена или отменена"
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

// Handle PATCH /api/v1/leave-requests/{leaveId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leaveID, err := handlers.PathInt64(r, "leaveId")
	if err != nil {
		h.logger.Warn("PATCH /leave-requests/{id}/review - Invalid leave ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLeaveID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /leave-requests/{id}/review - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReviewLeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /leave-requests/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Review(r.Context(), leaveID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrAccessDenied):
			h.logger.Warn("PATCH /leave-requests/{id}/review - Access denied: leave_id=%d, user_id=%d", leaveID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, leaves.ErrLeaveNotFound):
			h.logger.Warn("PATCH /leave-requests/{id}/review - Leave request not found: leave_id=%d", leaveID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, leaves.ErrNotPending):
			h.logger.Warn("PATCH /leave-requests/{id}/review - Leave request is not pending: leave_id=%d", leaveID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, leaves.ErrInvalidInput):
			h.logger.Warn("PATCH /leave-requests/{id}/review - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /leave-requests/{id}/review - Failed to review leave request: leave_id=%d, error=%v", leaveID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /leave-requests/{id}/review - Leave request reviewed successfully: leave_id=%d, status=%s, user_id=%d",
		leaveID, result.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
