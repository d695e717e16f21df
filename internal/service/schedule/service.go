package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	registryClient "github.com/m04kA/HMS-AppointmentService/internal/integrations/registry"
	"github.com/m04kA/HMS-AppointmentService/internal/service/schedule/models"
)

// Service сервис для работы с недельным расписанием врачей
type Service struct {
	scheduleRepo   ScheduleRepository
	registryClient RegistryClient
	cache          SlotsCache
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	registryClient RegistryClient,
	cache SlotsCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		registryClient: registryClient,
		cache:          cache,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetDoctorSchedule получает все окна приема врача
func (s *Service) GetDoctorSchedule(ctx context.Context, doctorID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetDoctorSchedule: fetching schedule for doctor=%d", doctorID)

	if doctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorId must be positive", ErrInvalidInput)
	}

	windows, err := s.scheduleRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("GetDoctorSchedule: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDoctorSchedule: successfully fetched %d windows for doctor=%d", len(windows), doctorID)
	return models.FromDomainSchedule(doctorID, windows), nil
}

// ReplaceDay заменяет окна приема врача на день недели в одной транзакции
// Доступно самому врачу и администратору
func (s *Service) ReplaceDay(ctx context.Context, req *models.ReplaceDayRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("ReplaceDay: replacing %s for doctor=%d with %d windows by user=%d",
		req.DayOfWeek, req.DoctorID, len(req.Windows), req.Actor.UserID)

	// 1. Проверяем права доступа
	if req.Actor.UserID != req.DoctorID && !req.Actor.IsAdmin() {
		s.logger.Warn("ReplaceDay: access denied for user=%d to doctor=%d", req.Actor.UserID, req.DoctorID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем окна
	if err := validateWindows(req); err != nil {
		s.logger.Warn("ReplaceDay: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем, что врач существует в реестре
	if err := s.checkDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	windows := make([]*domain.DoctorAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		windows = append(windows, &domain.DoctorAvailability{
			DoctorID:  req.DoctorID,
			DayOfWeek: req.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	// 4. Заменяем окна дня
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.DeleteDay(txCtx, req.DoctorID, req.DayOfWeek); err != nil {
			return err
		}
		return s.scheduleRepo.CreateBatch(txCtx, windows)
	})
	if err != nil {
		s.logger.Error("ReplaceDay: failed to replace %s for doctor=%d: %v", req.DayOfWeek, req.DoctorID, err)
		return nil, fmt.Errorf("%w: ReplaceDay - transaction error: %v", ErrInternal, err)
	}

	// 5. Сбрасываем кэш слотов врача
	if err := s.cache.InvalidateDoctor(ctx, req.DoctorID); err != nil {
		s.logger.Warn("ReplaceDay: failed to invalidate slots cache for doctor=%d: %v", req.DoctorID, err)
	}

	s.logger.Info("ReplaceDay: successfully replaced %s for doctor=%d", req.DayOfWeek, req.DoctorID)
	resp := models.FromDomainDay(req.DayOfWeek, windows)
	return &resp, nil
}

func (s *Service) checkDoctor(ctx context.Context, doctorID int64) error {
	staff, err := s.registryClient.GetStaff(ctx, doctorID)
	if err != nil {
		if errors.Is(err, registryClient.ErrStaffNotFound) {
			s.logger.Warn("ReplaceDay: doctor id=%d not found", doctorID)
			return ErrDoctorNotFound
		}
		s.logger.Error("ReplaceDay: failed to get staff id=%d: %v", doctorID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsDoctor() {
		s.logger.Warn("ReplaceDay: staff id=%d has role %s", doctorID, staff.Role)
		return ErrNotADoctor
	}
	return nil
}

// validateWindows проверяет день недели, границы окон и отсутствие пересечений
// Окна, касающиеся границами, не пересекаются
func validateWindows(req *models.ReplaceDayRequest) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorId must be positive", ErrInvalidInput)
	}
	if !req.DayOfWeek.IsValid() {
		return ErrInvalidDay
	}
	if len(req.Windows) > domain.MaxWindowsPerDay {
		return fmt.Errorf("%w: at most %d windows per day", ErrInvalidInput, domain.MaxWindowsPerDay)
	}

	sorted := make([]models.WindowRequest, len(req.Windows))
	copy(sorted, req.Windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime.IsBefore(sorted[j].StartTime) })

	for i, w := range sorted {
		if !w.StartTime.IsBefore(w.EndTime) {
			return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, w.StartTime, w.EndTime)
		}
		if i > 0 && w.StartTime.IsBefore(sorted[i-1].EndTime) {
			return fmt.Errorf("%w: %s-%s and %s-%s", ErrOverlappingWindows,
				sorted[i-1].StartTime, sorted[i-1].EndTime, w.StartTime, w.EndTime)
		}
	}

	return nil
}
