package domain

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusMissed    AppointmentStatus = "MISSED"
)

// IsValid reports whether the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusMissed:
		return true
	}
	return false
}

// AppointmentType represents the kind of visit
type AppointmentType string

const (
	TypeRegular   AppointmentType = "REGULAR"
	TypeFollowUp  AppointmentType = "FOLLOW_UP"
	TypeEmergency AppointmentType = "EMERGENCY"
)

// IsValid reports whether the type is one of the known values
func (t AppointmentType) IsValid() bool {
	switch t {
	case TypeRegular, TypeFollowUp, TypeEmergency:
		return true
	}
	return false
}

// Appointment represents a patient visit booked with a doctor
type Appointment struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Type        AppointmentType
	Status      AppointmentStatus
	IsEmergency bool
	Reason      *string
	Notes       *string
	CreatedBy   int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies the doctor's time
func (a *Appointment) IsActive() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.IsActive()
}

// CanTransitionTo reports whether staff may move the appointment to the given status.
// Cancellation has its own operation and is not a plain transition.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusScheduled:
		return next == StatusConfirmed || next == StatusCompleted || next == StatusMissed
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusMissed
	}
	return false
}

// MinutesDuration returns the length of the appointment
func (a *Appointment) MinutesDuration() int {
	return a.EndTime.Minutes() - a.StartTime.Minutes()
}

// AppointmentsFilter фильтр для получения записей врача или пациента
type AppointmentsFilter struct {
	DoctorID        *int64             // Фильтр по врачу
	PatientID       *int64             // Фильтр по пациенту
	StartDate       *time.Time         // Начало периода (включительно)
	EndDate         *time.Time         // Конец периода (включительно)
	Status          *AppointmentStatus // Фильтр по статусу
	IncludeInactive bool               // Включать ли отмененные, завершенные и пропущенные
}

// IsSingleDay возвращает true, если фильтр ограничен одной датой
func (f AppointmentsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
