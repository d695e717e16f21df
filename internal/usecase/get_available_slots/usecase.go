package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	slotsCache "github.com/m04kA/HMS-AppointmentService/internal/infra/cache/slots"
	registryClient "github.com/m04kA/HMS-AppointmentService/internal/integrations/registry"
	"github.com/m04kA/HMS-AppointmentService/pkg/availability"
	"github.com/m04kA/HMS-AppointmentService/pkg/ptr"
)

// UseCase use case для получения доступных слотов врача на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	leaveRepo       LeaveRepository
	scheduleRepo    ScheduleRepository
	registryClient  RegistryClient
	cache           SlotsCache
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	leaveRepo LeaveRepository,
	scheduleRepo ScheduleRepository,
	registryClient RegistryClient,
	cache SlotsCache,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		leaveRepo:       leaveRepo,
		scheduleRepo:    scheduleRepo,
		registryClient:  registryClient,
		cache:           cache,
		metrics:         metrics,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s, emergency=%t",
		req.DoctorID, req.Date.Format(domain.DateFormat), req.IsEmergency)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.settings.Location)
	date := domain.TruncateDate(req.Date)

	// 2. Проверяем врача в реестре
	staff, err := uc.registryClient.GetStaff(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, registryClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}
	if !staff.IsDoctor() {
		uc.logger.Warn("GetAvailableSlots: staff id=%d has role %s", req.DoctorID, staff.Role)
		return nil, ErrNotADoctor
	}

	// 3. Валидация даты
	if err := validateDate(date, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Кэш
	cached, err := uc.cache.Get(ctx, req.DoctorID, date, req.IsEmergency)
	switch {
	case err == nil:
		uc.metrics.ObserveSlotsCache(true)
		uc.logger.Info("GetAvailableSlots: cache hit for doctor=%d, date=%s", req.DoctorID, date.Format(domain.DateFormat))
		return uc.buildResponse(req, date, cached), nil
	case errors.Is(err, slotsCache.ErrCacheMiss):
		uc.metrics.ObserveSlotsCache(false)
	default:
		// Кэш не влияет на результат, только логируем
		uc.metrics.ObserveSlotsCache(false)
		uc.logger.Warn("GetAvailableSlots: cache get failed: %v", err)
	}

	// 5. Активные записи врача на дату
	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		DoctorID:  ptr.Ptr(req.DoctorID),
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	booked := make([]availability.Interval, 0, len(appointments))
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		booked = append(booked, availability.Interval{StartTime: a.StartTime, EndTime: a.EndTime})
	}

	// 6. Окна приема и интервалы отпуска
	entry := &slotsCache.Entry{}
	var windows []availability.WorkWindow
	var blackout []availability.Interval

	if req.IsEmergency {
		windows = []availability.WorkWindow{availability.EmergencyWindow()}
		entry.Message = MessageEmergency
	} else {
		blackout, err = uc.loadBlackout(ctx, req.DoctorID, date)
		if err != nil {
			return nil, err
		}
		windows, err = uc.loadWindows(ctx, req.DoctorID, date)
		if err != nil {
			return nil, err
		}
	}

	// 7. Расчет слотов по каждому окну
	result := make([]domain.AvailableSlot, 0)
	fallback := false
	for _, window := range windows {
		computed, err := availability.ComputeAvailableSlots(availability.Request{
			Window:    window,
			Booked:    booked,
			Blackout:  blackout,
			Emergency: req.IsEmergency,
			Now:       now,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to compute slots for window %s-%s: %v",
				window.OpenTime, window.CloseTime, err)
			return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}
		for _, s := range computed {
			fallback = fallback || s.Fallback
			result = append(result, domain.AvailableSlot{StartTime: s.StartTime, EndTime: s.EndTime, Label: s.Label})
		}
	}
	entry.Slots = result

	// 8. Сообщения для клиента
	if !req.IsEmergency {
		if len(blackout) > 0 {
			entry.Warning = WarningOnLeave
		}
		if len(result) == 0 {
			entry.Message = MessageNoSlots
		}
	}

	uc.metrics.ObserveSlotsComputed(req.IsEmergency, len(result))
	uc.logger.Info("GetAvailableSlots: computed %d slots for doctor=%d, date=%s",
		len(result), req.DoctorID, date.Format(domain.DateFormat))

	// 9. Сохраняем в кэш. Резервный слот привязан к текущему времени и не кэшируется
	if fallback {
		uc.logger.Info("GetAvailableSlots: emergency fallback slot for doctor=%d is not cached", req.DoctorID)
	} else if err := uc.cache.Set(ctx, req.DoctorID, date, req.IsEmergency, entry); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache set failed: %v", err)
	}

	return uc.buildResponse(req, date, entry), nil
}

// loadBlackout возвращает интервалы утвержденных отпусков врача на дату
func (uc *UseCase) loadBlackout(ctx context.Context, doctorID int64, date time.Time) ([]availability.Interval, error) {
	approved := domain.LeaveStatusApproved
	leaves, err := uc.leaveRepo.List(ctx, domain.LeavesFilter{
		DoctorID: ptr.Ptr(doctorID),
		Status:   &approved,
		Date:     &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get leaves: %v", err)
		return nil, fmt.Errorf("%w: failed to get leaves: %v", ErrInternal, err)
	}

	blackout := make([]availability.Interval, 0, len(leaves))
	for _, l := range leaves {
		if !l.IsApproved() || !l.Covers(date) {
			continue
		}
		blackout = append(blackout, availability.Interval{StartTime: l.StartTime, EndTime: l.EndTime})
	}

	return blackout, nil
}

// loadWindows возвращает окна приема врача на день недели даты
// Если на этот день окон нет (или расписания нет вовсе), используются стандартные часы больницы
func (uc *UseCase) loadWindows(ctx context.Context, doctorID int64, date time.Time) ([]availability.WorkWindow, error) {
	schedule, err := uc.scheduleRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	day := domain.DayOfWeekFromTime(date)
	windows := make([]availability.WorkWindow, 0)
	for _, w := range schedule {
		if w.DayOfWeek != day {
			continue
		}
		windows = append(windows, availability.WorkWindow{
			OpenTime:        w.StartTime,
			CloseTime:       w.EndTime,
			SlotGranularity: uc.settings.SlotGranularity,
		})
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no windows for doctor=%d on %s, using standard hours", doctorID, day)
		windows = append(windows, availability.WorkWindow{
			OpenTime:        uc.settings.StandardOpenTime,
			CloseTime:       uc.settings.StandardCloseTime,
			SlotGranularity: uc.settings.SlotGranularity,
		})
	}

	return windows, nil
}

func (uc *UseCase) buildResponse(req *Request, date time.Time, entry *slotsCache.Entry) *Response {
	result := entry.Slots
	if result == nil {
		result = []domain.AvailableSlot{}
	}
	return &Response{
		DoctorID:    req.DoctorID,
		Date:        date,
		IsEmergency: req.IsEmergency,
		Slots:       result,
		Message:     entry.Message,
		Warning:     entry.Warning,
	}
}
