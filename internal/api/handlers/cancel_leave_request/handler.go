package cancel_leave_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves"
)

const (
	msgInvalidLeaveID = "некорректный ID заявки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "отменить можно только свою заявку"
	msgNotFound       = "заявка не найдена"
	msgNotPending     = "заявка уже рассмотрена или отменена"
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

// Handle PATCH /api/v1/leave-requests/{leaveId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leaveID, err := handlers.PathInt64(r, "leaveId")
	if err != nil {
		h.logger.Warn("PATCH /leave-requests/{id}/cancel - Invalid leave ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLeaveID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /leave-requests/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Cancel(r.Context(), leaveID, actor)
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrLeaveNotFound):
			h.logger.Warn("PATCH /leave-requests/{id}/cancel - Leave request not found: leave_id=%d", leaveID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, leaves.ErrAccessDenied):
			h.logger.Warn("PATCH /leave-requests/{id}/cancel - Access denied: leave_id=%d, user_id=%d", leaveID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, leaves.ErrNotPending):
			h.logger.Warn("PATCH /leave-requests/{id}/cancel - Leave request is not pending: leave_id=%d", leaveID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("PATCH /leave-requests/{id}/cancel - Failed to cancel leave request: leave_id=%d, error=%v", leaveID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /leave-requests/{id}/cancel - Leave request cancelled successfully: leave_id=%d, user_id=%d",
		leaveID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
