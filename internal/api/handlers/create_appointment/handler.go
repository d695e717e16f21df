package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/HMS-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgUnauthorized       = "пользователь не определен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgPatientRequired    = "patientId обязателен"
	msgForbidden          = "пациент может записать только себя"
	msgDoctorNotFound     = "врач не найден"
	msgNotADoctor         = "сотрудник не является врачом"
	msgPatientNotFound    = "пациент не найден"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
	msgDateInPast         = "дата записи в прошлом"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgDoctorOnLeave      = "врач в отпуске в выбранное время"
	msgOutsideHours       = "выбранное время вне часов приема врача"
	msgDoctorBusy         = "у врача уже есть запись на это время"
	msgPatientBusy        = "у пациента уже есть запись на это время"
	msgInvalidInput       = "некорректные данные записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Пациент записывает только себя
	if actor.Role == domain.RolePatient {
		if req.PatientID == 0 {
			req.PatientID = actor.UserID
		}
		if req.PatientID != actor.UserID {
			h.logger.Warn("POST /appointments - Patient books for another patient: user_id=%d, patient_id=%d",
				actor.UserID, req.PatientID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}
	if req.PatientID == 0 {
		h.logger.Warn("POST /appointments - Missing patient ID: user_id=%d", actor.UserID)
		handlers.RespondBadRequest(w, msgPatientRequired)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /appointments - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createAppointment.ErrNotADoctor):
			h.logger.Warn("POST /appointments - Not a doctor: staff_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgNotADoctor)

		case errors.Is(err, createAppointment.ErrPatientNotFound):
			h.logger.Warn("POST /appointments - Patient not found: patient_id=%d", req.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createAppointment.ErrInvalidTimeRange):
			h.logger.Warn("POST /appointments - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: doctor_id=%d, date=%s, time=%s-%s",
				req.DoctorID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrDoctorOnLeave):
			h.logger.Warn("POST /appointments - Doctor on leave: doctor_id=%d, date=%s", req.DoctorID, req.Date)
			handlers.RespondConflict(w, msgDoctorOnLeave)

		case errors.Is(err, createAppointment.ErrDoctorBusy):
			h.logger.Warn("POST /appointments - Doctor busy: doctor_id=%d, date=%s, time=%s-%s",
				req.DoctorID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgDoctorBusy)

		case errors.Is(err, createAppointment.ErrPatientBusy):
			h.logger.Warn("POST /appointments - Patient busy: patient_id=%d, date=%s, time=%s-%s",
				req.PatientID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgPatientBusy)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: doctor_id=%d, patient_id=%d, error=%v",
				req.DoctorID, req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, doctor_id=%d, patient_id=%d",
		result.ID, result.DoctorID, result.PatientID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
