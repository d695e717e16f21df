package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	registryClient "github.com/m04kA/HMS-AppointmentService/internal/integrations/registry"
	"github.com/m04kA/HMS-AppointmentService/pkg/availability"
	"github.com/m04kA/HMS-AppointmentService/pkg/ptr"
)

// UseCase use case для создания записи на прием
type UseCase struct {
	appointmentRepo AppointmentRepository
	leaveRepo       LeaveRepository
	scheduleRepo    ScheduleRepository
	registryClient  RegistryClient
	cache           SlotsCache
	txManager       TransactionManager
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
	txManager TransactionManager,
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
		txManager:       txManager,
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

// Execute выполняет use case создания записи
// Проверки пересечений и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: by=%d, patient=%d, doctor=%d, date=%s, time=%s-%s, emergency=%t",
		req.CreatedBy, req.PatientID, req.DoctorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.IsEmergency)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	appointmentType := req.Type
	if appointmentType == "" {
		appointmentType = domain.TypeRegular
	}
	emergency := req.IsEmergency || appointmentType == domain.TypeEmergency
	if emergency {
		appointmentType = domain.TypeEmergency
	}

	now := uc.timeProvider.Now().In(uc.settings.Location)
	date := domain.TruncateDate(req.Date)

	// 2. Валидация даты
	if err := validateDate(date, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем врача и пациента в реестре
	if err := uc.checkParticipants(ctx, req.DoctorID, req.PatientID); err != nil {
		return nil, err
	}

	candidate := availability.Interval{StartTime: req.StartTime, EndTime: req.EndTime}
	var result *domain.Appointment

	// 4. Проверки и создание в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !emergency {
			// 4.1. Отпуск врача
			if err := uc.checkLeave(txCtx, req.DoctorID, date, candidate); err != nil {
				return err
			}

			// 4.2. Часы приема
			schedule, err := uc.scheduleRepo.ListByDoctor(txCtx, req.DoctorID)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to get schedule: %v", err)
				return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
			}
			if err := validateWorkingHours(schedule, date, req.StartTime, req.EndTime,
				uc.settings.StandardOpenTime, uc.settings.StandardCloseTime); err != nil {
				uc.logger.Warn("CreateAppointment: %v", err)
				return err
			}
		}

		// 4.3. Пересечение с записями врача (строки блокируются FOR UPDATE)
		doctorAppointments, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			DoctorID:  ptr.Ptr(req.DoctorID),
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get doctor appointments: %v", err)
			return fmt.Errorf("%w: failed to get doctor appointments: %v", ErrInternal, err)
		}
		if conflict := findOverlap(doctorAppointments, candidate); conflict != nil {
			uc.logger.Warn("CreateAppointment: doctor=%d busy, conflicts with appointment id=%d", req.DoctorID, conflict.ID)
			return ErrDoctorBusy
		}

		// 4.4. Пересечение с записями пациента
		patientAppointments, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			PatientID: ptr.Ptr(req.PatientID),
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get patient appointments: %v", err)
			return fmt.Errorf("%w: failed to get patient appointments: %v", ErrInternal, err)
		}
		if conflict := findOverlap(patientAppointments, candidate); conflict != nil {
			uc.logger.Warn("CreateAppointment: patient=%d busy, conflicts with appointment id=%d", req.PatientID, conflict.ID)
			return ErrPatientBusy
		}

		// 4.5. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			PatientID:   req.PatientID,
			DoctorID:    req.DoctorID,
			Date:        date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Type:        appointmentType,
			Status:      domain.StatusScheduled,
			IsEmergency: emergency,
			Reason:      req.Reason,
			Notes:       req.Notes,
			CreatedBy:   req.CreatedBy,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Инвалидируем кэш слотов после фиксации транзакции
	if err := uc.cache.Invalidate(ctx, req.DoctorID, date); err != nil {
		uc.logger.Warn("CreateAppointment: failed to invalidate slots cache: %v", err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		PatientID:   result.PatientID,
		DoctorID:    result.DoctorID,
		Date:        result.Date,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Type:        string(result.Type),
		Status:      string(result.Status),
		IsEmergency: result.IsEmergency,
		Reason:      result.Reason,
		Notes:       result.Notes,
		CreatedBy:   result.CreatedBy,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

func (uc *UseCase) checkParticipants(ctx context.Context, doctorID, patientID int64) error {
	staff, err := uc.registryClient.GetStaff(ctx, doctorID)
	if err != nil {
		if errors.Is(err, registryClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d not found", doctorID)
			return ErrDoctorNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", doctorID, err)
		return fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}
	if !staff.IsDoctor() {
		uc.logger.Warn("CreateAppointment: staff id=%d has role %s", doctorID, staff.Role)
		return ErrNotADoctor
	}

	if _, err := uc.registryClient.GetPatient(ctx, patientID); err != nil {
		if errors.Is(err, registryClient.ErrPatientNotFound) {
			uc.logger.Warn("CreateAppointment: patient id=%d not found", patientID)
			return ErrPatientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get patient id=%d: %v", patientID, err)
		return fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	return nil
}

func (uc *UseCase) checkLeave(ctx context.Context, doctorID int64, date time.Time, candidate availability.Interval) error {
	approved := domain.LeaveStatusApproved
	leaves, err := uc.leaveRepo.List(ctx, domain.LeavesFilter{
		DoctorID: ptr.Ptr(doctorID),
		Status:   &approved,
		Date:     &date,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get leaves: %v", err)
		return fmt.Errorf("%w: failed to get leaves: %v", ErrInternal, err)
	}

	for _, l := range leaves {
		if !l.IsApproved() || !l.Covers(date) {
			continue
		}
		if availability.Overlaps(candidate, availability.Interval{StartTime: l.StartTime, EndTime: l.EndTime}) {
			uc.logger.Warn("CreateAppointment: doctor=%d on leave id=%d", doctorID, l.ID)
			return fmt.Errorf("%w: %s-%s", ErrDoctorOnLeave, l.StartTime, l.EndTime)
		}
	}

	return nil
}
