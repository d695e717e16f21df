package list_pending_leave_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступно только администратору"
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

// Handle GET /api/v1/leave-requests/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /leave-requests/pending - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListPending(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrAccessDenied):
			h.logger.Warn("GET /leave-requests/pending - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /leave-requests/pending - Failed to list pending leave requests: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /leave-requests/pending - Pending leave requests retrieved successfully: count=%d", len(result.LeaveRequests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
