package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/availability"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CreatedBy <= 0 {
		return fmt.Errorf("%w: createdBy must be positive", ErrInvalidInput)
	}

	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Type != "" && !req.Type.IsValid() {
		return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, req.Type)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return ErrInvalidTimeRange
	}

	return nil
}

// validateDate проверяет, что на дату можно записаться
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceBookingDays)
	if dateOnly(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateWorkingHours проверяет, что запись целиком попадает в одно из окон приема врача
// Если на день недели окон нет (или расписания нет вовсе), действуют стандартные часы
func validateWorkingHours(
	schedule []*domain.DoctorAvailability,
	date time.Time,
	start, end types.TimeString,
	standardOpen, standardClose types.TimeString,
) error {
	day := domain.DayOfWeekFromTime(date)
	hasWindows := false
	for _, w := range schedule {
		if w.DayOfWeek != day {
			continue
		}
		hasWindows = true
		if w.Contains(start, end) {
			return nil
		}
	}

	if hasWindows {
		return fmt.Errorf("%w: no matching window on %s", ErrOutsideWorkingHours, day)
	}

	if start.IsBefore(standardOpen) || end.IsAfter(standardClose) {
		return fmt.Errorf("%w: standard hours are %s-%s", ErrOutsideWorkingHours, standardOpen, standardClose)
	}
	return nil
}

// findOverlap возвращает первую активную запись, пересекающуюся с интервалом
func findOverlap(appointments []*domain.Appointment, candidate availability.Interval) *domain.Appointment {
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		if availability.Overlaps(candidate, availability.Interval{StartTime: a.StartTime, EndTime: a.EndTime}) {
			return a
		}
	}
	return nil
}

// dateOnly приводит дату к полуночи UTC для сравнения календарных дней
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}
