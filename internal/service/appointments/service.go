package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/HMS-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/HMS-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями на прием
type Service struct {
	appointmentRepo AppointmentRepository
	cache           SlotsCache
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	cache SlotsCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		cache:           cache,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Доступ есть у врача, пациента, создателя записи и у персонала (admin, receptionist)
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actor.UserID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canView(appointment, actor) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetDoctorAppointments получает записи врача с фильтрацией
// Доступно самому врачу и персоналу
func (s *Service) GetDoctorAppointments(ctx context.Context, req *models.GetDoctorAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetDoctorAppointments: fetching appointments for doctor=%d, user=%d", req.DoctorID, req.Actor.UserID)

	if req.Actor.UserID != req.DoctorID && !req.Actor.IsStaff() {
		s.logger.Warn("GetDoctorAppointments: access denied for user=%d to doctor=%d", req.Actor.UserID, req.DoctorID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDoctorAppointments: invalid filter for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetDoctorAppointments: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDoctorAppointments: successfully fetched %d appointments for doctor=%d", len(appointments), req.DoctorID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Отменить может врач, пациент, создатель записи или персонал. Только SCHEDULED и CONFIRMED
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, req.Actor.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getAppointment(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if !canView(appointment, req.Actor) {
			s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.Actor.UserID, id)
			return ErrAccessDenied
		}

		if !appointment.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appointment.Status)
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.Cancel(txCtx, id, req.CancellationReason); err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		cancelled = appointment
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, cancelled.DoctorID, cancelled.Date); err != nil {
		s.logger.Warn("Cancel: failed to invalidate slots cache: %v", err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// UpdateStatus переводит запись в CONFIRMED, COMPLETED или MISSED
// Доступно врачу записи и персоналу
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d", id, req.Status, req.Actor.UserID)

	status, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if status == domain.StatusCancelled {
		return fmt.Errorf("%w: use cancel to cancel an appointment", ErrInvalidStatusTransition)
	}

	var updated *domain.Appointment
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getAppointment(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if appointment.DoctorID != req.Actor.UserID && !req.Actor.IsStaff() {
			s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", req.Actor.UserID, id)
			return ErrAccessDenied
		}

		if !appointment.CanTransitionTo(status) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d", appointment.Status, status, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, appointment.Status, status)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, status); err != nil {
			return s.mapRepoError("UpdateStatus", id, err)
		}

		updated = appointment
		return nil
	})
	if err != nil {
		return err
	}

	// COMPLETED и MISSED освобождают время врача
	if status != domain.StatusConfirmed {
		if err := s.cache.Invalidate(ctx, updated.DoctorID, updated.Date); err != nil {
			s.logger.Warn("UpdateStatus: failed to invalidate slots cache: %v", err)
		}
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, status)
	return nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return appointment, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%d not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// canView проверяет, что пользователь участвует в записи или является персоналом
func canView(a *domain.Appointment, actor domain.Actor) bool {
	if actor.IsStaff() {
		return true
	}
	return actor.UserID == a.DoctorID || actor.UserID == a.PatientID || actor.UserID == a.CreatedBy
}
