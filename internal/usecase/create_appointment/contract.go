package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/registry"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// LeaveRepository интерфейс репозитория заявок на отпуск
type LeaveRepository interface {
	List(ctx context.Context, filter domain.LeavesFilter) ([]*domain.LeaveRequest, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.DoctorAvailability, error)
}

// RegistryClient интерфейс клиента реестра персонала и пациентов
type RegistryClient interface {
	GetStaff(ctx context.Context, staffID int64) (*registry.Staff, error)
	GetPatient(ctx context.Context, patientID int64) (*registry.Patient, error)
}

// SlotsCache интерфейс инвалидации кэша слотов
type SlotsCache interface {
	Invalidate(ctx context.Context, doctorID int64, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
