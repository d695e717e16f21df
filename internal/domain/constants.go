package domain

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// Roles set by the gateway in X-User-Role
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleDoctor       = "doctor"
	RolePatient      = "patient"
)

// Business validation constants
const (
	MaxReasonLength             = 500
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxAdminNotesLength         = 1000
	MaxWindowsPerDay            = 8
	MaxLeaveDays                = 366 // календарных дней в одной заявке на отпуск
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DayStart и DayEnd границы полного дня. Отпуск 00:00-23:59 считается полным днем
var (
	DayStart = types.MustTimeString("00:00")
	DayEnd   = types.MustTimeString("23:59")
)

// ActiveStatuses статусы записей, занимающих время врача
// Используется при подсчете доступных слотов и проверке пересечений
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}

// InactiveStatuses статусы записей, не занимающих время врача
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusMissed,
}

// IsStaffRole возвращает true для ролей с доступом ко всем записям
func IsStaffRole(role string) bool {
	return role == RoleAdmin || role == RoleReceptionist
}

// TruncateDate отбрасывает время суток, сохраняя часовой пояс
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
