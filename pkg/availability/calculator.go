// Package availability computes the free slots of a single working day.
//
// The calculator is a pure function: it performs no I/O, never reads the
// clock and keeps no state, so it is safe to call from any number of
// goroutines.
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// ComputeAvailableSlots делит окно на слоты с шагом SlotGranularity и исключает
// слоты, пересекающиеся с занятыми интервалами, а для неэкстренных запросов и
// с интервалами блокировки (отпуска).
//
// Последний слот обрезается по CloseTime. Пересечение строгое: интервал,
// заканчивающийся ровно в начале слота, слот не блокирует.
//
// Пустой результат для обычного запроса означает "нет свободного времени" и
// ошибкой не является. Для экстренного запроса результат никогда не пуст: если
// все слоты заняты, возвращается один резервный слот от Now, округленного вниз
// до EmergencyGranularity.
func ComputeAvailableSlots(req Request) ([]AvailableSlot, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	step := int(req.Window.SlotGranularity / time.Minute)
	open := req.Window.OpenTime.Minutes()
	closing := req.Window.CloseTime.Minutes()

	slots := make([]AvailableSlot, 0, (closing-open)/step+1)

	for start := open; start < closing; start += step {
		end := start + step
		if end > closing {
			end = closing
		}

		candidate := Interval{StartTime: at(start), EndTime: at(end)}

		if overlapsAny(candidate, req.Booked) {
			continue
		}
		if !req.Emergency && overlapsAny(candidate, req.Blackout) {
			continue
		}

		slots = append(slots, AvailableSlot{
			StartTime: candidate.StartTime,
			EndTime:   candidate.EndTime,
			Label:     Label(candidate.StartTime, candidate.EndTime, req.Emergency),
		})
	}

	if len(slots) == 0 && req.Emergency {
		slots = append(slots, fallbackSlot(req.Now))
	}

	return slots, nil
}

// fallbackSlot последний вариант для экстренной записи: текущее время,
// округленное вниз до 15 минут, длительностью 15 минут (не позже 23:59)
func fallbackSlot(now time.Time) AvailableSlot {
	step := int(EmergencyGranularity / time.Minute)
	current := types.NewTimeString(now).Minutes()

	start := current / step * step
	end := start + step
	if lastMinute := 24*60 - 1; end > lastMinute {
		end = lastMinute
	}

	return AvailableSlot{
		StartTime: at(start),
		EndTime:   at(end),
		Label:     Label(at(start), at(end), true),
		Fallback:  true,
	}
}

func overlapsAny(candidate Interval, intervals []Interval) bool {
	for _, other := range intervals {
		if Overlaps(candidate, other) {
			return true
		}
	}
	return false
}

func validateRequest(req Request) error {
	w := req.Window
	if !w.OpenTime.IsBefore(w.CloseTime) {
		return fmt.Errorf("%w: open time %s must be before close time %s", ErrInvalidWindow, w.OpenTime, w.CloseTime)
	}
	if w.SlotGranularity < time.Minute || w.SlotGranularity%time.Minute != 0 {
		return fmt.Errorf("%w: slot granularity %s must be a positive number of minutes", ErrInvalidWindow, w.SlotGranularity)
	}

	for i, b := range req.Booked {
		if !b.StartTime.IsBefore(b.EndTime) {
			return fmt.Errorf("%w: booked[%d] %s-%s", ErrInvalidInterval, i, b.StartTime, b.EndTime)
		}
	}
	for i, b := range req.Blackout {
		if !b.StartTime.IsBefore(b.EndTime) {
			return fmt.Errorf("%w: blackout[%d] %s-%s", ErrInvalidInterval, i, b.StartTime, b.EndTime)
		}
	}

	return nil
}

// at переводит минуты от полуночи в TimeString; вызывается только для значений внутри суток
func at(minutes int) types.TimeString {
	ts, _ := types.NewTimeStringFromMinutes(minutes)
	return ts
}
