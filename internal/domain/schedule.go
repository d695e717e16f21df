package domain

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// DayOfWeek is a weekday number where Monday is 0 and Sunday is 6
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsValid reports whether the day is in range 0..6
func (d DayOfWeek) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the English day name
func (d DayOfWeek) String() string {
	if !d.IsValid() {
		return "Unknown"
	}
	return dayNames[d]
}

// DayOfWeekFromTime converts time.Weekday (Sunday = 0) to DayOfWeek (Monday = 0)
func DayOfWeekFromTime(t time.Time) DayOfWeek {
	return DayOfWeek((int(t.Weekday()) + 6) % 7)
}

// DoctorAvailability is one weekly working window of a doctor
type DoctorAvailability struct {
	ID        int64
	DoctorID  int64
	DayOfWeek DayOfWeek
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether [start, end) fits entirely inside the window
func (a *DoctorAvailability) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(a.StartTime) && !end.IsAfter(a.EndTime)
}
