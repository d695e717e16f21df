package schedule

import (
	"context"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	registryClient "github.com/m04kA/HMS-AppointmentService/internal/integrations/registry"
)

// ScheduleRepository интерфейс репозитория недельного расписания врачей
type ScheduleRepository interface {
	ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.DoctorAvailability, error)
	DeleteDay(ctx context.Context, doctorID int64, day domain.DayOfWeek) error
	CreateBatch(ctx context.Context, windows []*domain.DoctorAvailability) error
}

// RegistryClient интерфейс для проверки врача в реестре персонала
type RegistryClient interface {
	GetStaff(ctx context.Context, staffID int64) (*registryClient.Staff, error)
}

// SlotsCache интерфейс инвалидации кэша слотов врача
type SlotsCache interface {
	InvalidateDoctor(ctx context.Context, doctorID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
