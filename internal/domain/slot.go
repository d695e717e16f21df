package domain

import "github.com/m04kA/HMS-AppointmentService/pkg/types"

// AvailableSlot represents a free time range of a doctor on a date
type AvailableSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string
}

// DurationMinutes returns the slot length in minutes
func (s *AvailableSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// Actor кто выполняет операцию: идентификатор и роль из заголовков шлюза
type Actor struct {
	UserID int64
	Role   string
}

// IsStaff возвращает true для администратора и регистратуры
func (a Actor) IsStaff() bool {
	return IsStaffRole(a.Role)
}

// IsAdmin возвращает true для администратора
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
