package availability

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

const (
	// DefaultGranularity шаг обычных слотов
	DefaultGranularity = 30 * time.Minute

	// EmergencyGranularity шаг экстренных слотов и резервного слота
	EmergencyGranularity = 15 * time.Minute

	emergencySuffix = " (Emergency)"
)

// WorkWindow bounds a single day of work and the step the day is chopped into.
type WorkWindow struct {
	OpenTime        types.TimeString
	CloseTime       types.TimeString
	SlotGranularity time.Duration
}

// Interval is a half-open time-of-day range [StartTime, EndTime).
// Booked appointments and blackout (leave) periods share this shape.
type Interval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// AvailableSlot is a free candidate returned by ComputeAvailableSlots.
// Fallback is set only on the emergency last-resort slot anchored at Now.
type AvailableSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string
	Fallback  bool
}

// DurationMinutes returns the slot length in minutes.
func (s AvailableSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// Request входные данные калькулятора
type Request struct {
	Window    WorkWindow
	Booked    []Interval
	Blackout  []Interval // игнорируется при Emergency
	Emergency bool
	Now       time.Time // используется только для резервного экстренного слота
}

// EmergencyWindow окно для экстренных записей: весь день 00:00-23:59 с шагом 15 минут
func EmergencyWindow() WorkWindow {
	return WorkWindow{
		OpenTime:        types.MustTimeString("00:00"),
		CloseTime:       types.MustTimeString("23:59"),
		SlotGranularity: EmergencyGranularity,
	}
}

// Overlaps reports whether two half-open intervals intersect.
// Intervals that only touch at a boundary do not overlap.
func Overlaps(a, b Interval) bool {
	return a.StartTime.IsBefore(b.EndTime) && a.EndTime.IsAfter(b.StartTime)
}

// Label форматирует диапазон слота, например "08:00 - 08:30 (Emergency)"
func Label(start, end types.TimeString, emergency bool) string {
	label := start.String() + " - " + end.String()
	if emergency {
		label += emergencySuffix
	}
	return label
}
