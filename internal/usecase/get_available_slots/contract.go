package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/infra/cache/slots"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/registry"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
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

// RegistryClient интерфейс клиента реестра персонала
type RegistryClient interface {
	GetStaff(ctx context.Context, staffID int64) (*registry.Staff, error)
}

// SlotsCache интерфейс кэша рассчитанных слотов
type SlotsCache interface {
	Get(ctx context.Context, doctorID int64, date time.Time, emergency bool) (*slots.Entry, error)
	Set(ctx context.Context, doctorID int64, date time.Time, emergency bool, entry *slots.Entry) error
}

// Metrics интерфейс метрик расчета слотов
type Metrics interface {
	ObserveSlotsComputed(emergency bool, count int)
	ObserveSlotsCache(hit bool)
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
