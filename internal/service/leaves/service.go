package leaves

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	leaveRepo "github.com/m04kA/HMS-AppointmentService/internal/infra/storage/leave"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves/models"
)

// WarningConflicts предупреждение для администратора о записях в период отпуска
const WarningConflicts = "The doctor has active appointments during the requested leave. They must be rescheduled or cancelled."

// Service сервис для работы с заявками на отпуск
type Service struct {
	leaveRepo       LeaveRepository
	appointmentRepo AppointmentRepository
	cache           SlotsCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок на отпуск
// location часовой пояс больницы, по нему определяется "сегодня"
func NewService(
	leaveRepo LeaveRepository,
	appointmentRepo AppointmentRepository,
	cache SlotsCache,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		leaveRepo:       leaveRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает заявку на отпуск в статусе PENDING
// Подать заявку может сам врач или администратор
// Возвращает активные записи врача, пересекающиеся с отпуском
func (s *Service) Create(ctx context.Context, req *models.CreateLeaveRequest) (*models.CreateLeaveResponse, error) {
	s.logger.Info("Create: creating leave for doctor=%d from %s to %s by user=%d",
		req.DoctorID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.Actor.UserID)

	if req.Actor.UserID != req.DoctorID && !req.Actor.IsAdmin() {
		s.logger.Warn("Create: user=%d cannot create leave for doctor=%d", req.Actor.UserID, req.DoctorID)
		return nil, ErrAccessDenied
	}

	if err := s.validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var (
		leave     *domain.LeaveRequest
		conflicts []*domain.Appointment
	)

	// Заявка и поиск конфликтов в одной транзакции, чтобы ошибка поиска не оставляла заявку
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.leaveRepo.Create(txCtx, &domain.LeaveRequest{
			DoctorID:  req.DoctorID,
			StartDate: dateOnly(req.StartDate),
			EndDate:   dateOnly(req.EndDate),
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Reason:    strings.TrimSpace(req.Reason),
			Status:    domain.LeaveStatusPending,
		})
		if err != nil {
			s.logger.Error("Create: failed to create leave for doctor=%d: %v", req.DoctorID, err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		found, err := s.findConflicts(txCtx, created)
		if err != nil {
			s.logger.Error("Create: failed to find conflicting appointments for doctor=%d: %v", req.DoctorID, err)
			return fmt.Errorf("%w: Create - conflicts lookup: %v", ErrInternal, err)
		}

		leave, conflicts = created, found
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &models.CreateLeaveResponse{
		Leave:                   *models.FromDomainLeave(leave),
		ConflictingAppointments: models.FromDomainConflicts(conflicts),
	}
	if len(conflicts) > 0 {
		resp.Warning = WarningConflicts
	}

	s.logger.Info("Create: successfully created leave id=%d, conflicts=%d", leave.ID, len(conflicts))
	return resp, nil
}

// ListByDoctor получает заявки врача, опционально по статусу
// Доступно самому врачу и персоналу
func (s *Service) ListByDoctor(ctx context.Context, doctorID int64, actor domain.Actor, status *string) (*models.LeaveListResponse, error) {
	s.logger.Info("ListByDoctor: fetching leaves for doctor=%d by user=%d", doctorID, actor.UserID)

	if actor.UserID != doctorID && !actor.IsStaff() {
		s.logger.Warn("ListByDoctor: access denied for user=%d to doctor=%d", actor.UserID, doctorID)
		return nil, ErrAccessDenied
	}

	filter := domain.LeavesFilter{DoctorID: &doctorID}
	if status != nil {
		st, err := models.ToDomainLeaveStatus(*status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &st
	}

	leaves, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByDoctor: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: ListByDoctor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDoctor: successfully fetched %d leaves for doctor=%d", len(leaves), doctorID)
	return models.FromDomainLeaveList(leaves), nil
}

// ListPending получает все заявки, ожидающие рассмотрения
// Доступно только администратору
func (s *Service) ListPending(ctx context.Context, actor domain.Actor) (*models.LeaveListResponse, error) {
	s.logger.Info("ListPending: fetching pending leaves by user=%d", actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("ListPending: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	status := domain.LeaveStatusPending
	leaves, err := s.leaveRepo.List(ctx, domain.LeavesFilter{Status: &status})
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPending: successfully fetched %d pending leaves", len(leaves))
	return models.FromDomainLeaveList(leaves), nil
}

// Review одобряет или отклоняет заявку. Только PENDING, только администратор
// При одобрении сбрасывается кэш слотов на каждую дату отпуска
func (s *Service) Review(ctx context.Context, id int64, req *models.ReviewLeaveRequest) (*models.LeaveResponse, error) {
	s.logger.Info("Review: reviewing leave id=%d, decision=%s by user=%d", id, req.Decision, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("Review: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	status, err := req.Decision.Status()
	if err != nil {
		return nil, fmt.Errorf("%w: decision must be approve or reject", ErrInvalidInput)
	}
	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxAdminNotesLength {
		return nil, fmt.Errorf("%w: adminNotes must be at most %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	var reviewed *domain.LeaveRequest
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		leave, err := s.getLeave(txCtx, "Review", id)
		if err != nil {
			return err
		}

		if !leave.IsPending() {
			s.logger.Warn("Review: leave id=%d is not pending, status=%s", id, leave.Status)
			return ErrNotPending
		}

		if err := s.leaveRepo.Review(txCtx, id, status, req.Actor.UserID, req.AdminNotes); err != nil {
			return s.mapRepoError("Review", id, err)
		}

		reviewed, err = s.getLeave(txCtx, "Review", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if reviewed.IsApproved() {
		s.invalidateRange(ctx, reviewed)
	}

	s.logger.Info("Review: leave id=%d is %s", id, reviewed.Status)
	return models.FromDomainLeave(reviewed), nil
}

// Cancel отменяет собственную заявку врача в статусе PENDING
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Cancel: cancelling leave id=%d by user=%d", id, actor.UserID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		leave, err := s.getLeave(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if leave.DoctorID != actor.UserID {
			s.logger.Warn("Cancel: user=%d is not the owner of leave id=%d", actor.UserID, id)
			return ErrAccessDenied
		}

		if !leave.IsPending() {
			s.logger.Warn("Cancel: leave id=%d is not pending, status=%s", id, leave.Status)
			return ErrNotPending
		}

		if err := s.leaveRepo.UpdateStatus(txCtx, id, domain.LeaveStatusCancelled); err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		s.logger.Info("Cancel: successfully cancelled leave id=%d", id)
		return nil
	})
}

func (s *Service) validateCreate(req *models.CreateLeaveRequest) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorId must be positive", ErrInvalidInput)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	start, end := dateOnly(req.StartDate), dateOnly(req.EndDate)
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	if end.After(start.AddDate(0, 0, domain.MaxLeaveDays-1)) {
		return fmt.Errorf("%w: leave must not exceed %d days", ErrInvalidDateRange, domain.MaxLeaveDays)
	}
	if start.Before(dateOnly(s.timeProvider.Now().In(s.location))) {
		return ErrDateInPast
	}

	// 00:00-23:59 полный день, остальные интервалы должны быть непустыми
	fullDay := req.StartTime.Equal(domain.DayStart) && req.EndTime.Equal(domain.DayEnd)
	if !fullDay && !req.StartTime.IsBefore(req.EndTime) {
		return ErrInvalidTimeRange
	}

	return nil
}

// findConflicts ищет активные записи врача в датах отпуска, пересекающиеся по времени
func (s *Service) findConflicts(ctx context.Context, leave *domain.LeaveRequest) ([]*domain.Appointment, error) {
	doctorID := leave.DoctorID
	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		DoctorID:  &doctorID,
		StartDate: &leave.StartDate,
		EndDate:   &leave.EndDate,
	})
	if err != nil {
		return nil, err
	}

	conflicts := make([]*domain.Appointment, 0)
	for _, a := range appointments {
		if !leave.Covers(a.Date) {
			continue
		}
		if leave.IsFullDay() || (a.StartTime.IsBefore(leave.EndTime) && a.EndTime.IsAfter(leave.StartTime)) {
			conflicts = append(conflicts, a)
		}
	}
	return conflicts, nil
}

func (s *Service) invalidateRange(ctx context.Context, leave *domain.LeaveRequest) {
	for _, date := range leave.Dates() {
		if err := s.cache.Invalidate(ctx, leave.DoctorID, date); err != nil {
			s.logger.Warn("Review: failed to invalidate slots cache for doctor=%d date=%s: %v",
				leave.DoctorID, date.Format(domain.DateFormat), err)
		}
	}
}

func (s *Service) getLeave(ctx context.Context, op string, id int64) (*domain.LeaveRequest, error) {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return leave, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, leaveRepo.ErrLeaveNotFound) {
		s.logger.Warn("%s: leave id=%d not found", op, id)
		return ErrLeaveNotFound
	}
	s.logger.Error("%s: repository error for leave id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
