package update_doctor_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/schedule"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidDay         = "день недели должен быть от 0 (понедельник) до 6 (воскресенье)"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgForbidden          = "изменять расписание может только сам врач или администратор"
	msgDoctorNotFound     = "врач не найден"
	msgNotADoctor         = "сотрудник не является врачом"
	msgInvalidWindow      = "время окончания окна должно быть позже времени начала"
	msgOverlapping        = "окна приема пересекаются"
	msgInvalidInput       = "некорректное расписание"
)

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

// Handle PUT /api/v1/doctors/{doctorId}/schedule/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	dayNum, err := strconv.Atoi(mux.Vars(r)["dayOfWeek"])
	day := domain.DayOfWeek(dayNum)
	if err != nil || !day.IsValid() {
		h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Invalid day of week: %q", mux.Vars(r)["dayOfWeek"])
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateDayScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(doctorID, day, actor)
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Failed to parse windows: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.ReplaceDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Access denied: doctor_id=%d, user_id=%d", doctorID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrDoctorNotFound):
			h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, schedule.ErrNotADoctor):
			h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Not a doctor: staff_id=%d", doctorID)
			handlers.RespondNotFound(w, msgNotADoctor)

		case errors.Is(err, schedule.ErrInvalidDay):
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, schedule.ErrInvalidWindow):
			h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, schedule.ErrOverlappingWindows):
			h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Overlapping windows: %v", err)
			handlers.RespondBadRequest(w, msgOverlapping)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /doctors/{id}/schedule/{day} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /doctors/{id}/schedule/{day} - Failed to replace schedule: doctor_id=%d, day=%d, error=%v",
				doctorID, dayNum, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/{id}/schedule/{day} - Schedule updated successfully: doctor_id=%d, day=%s, windows=%d",
		doctorID, day, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
