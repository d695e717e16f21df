package leaves

import (
	"context"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// LeaveRepository интерфейс репозитория заявок на отпуск
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) (*domain.LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	List(ctx context.Context, filter domain.LeavesFilter) ([]*domain.LeaveRequest, error)
	Review(ctx context.Context, id int64, status domain.LeaveStatus, reviewedBy int64, notes *string) error
	UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus) error
}

// AppointmentRepository интерфейс для поиска записей, пересекающихся с отпуском
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// SlotsCache интерфейс инвалидации кэша слотов
type SlotsCache interface {
	Invalidate(ctx context.Context, doctorID int64, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
