package domain

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// LeaveStatus represents the review state of a leave request
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "PENDING"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
	LeaveStatusCancelled LeaveStatus = "CANCELLED"
)

// IsValid reports whether the status is one of the known values
func (s LeaveStatus) IsValid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled:
		return true
	}
	return false
}

// LeaveRequest is a doctor's request to be absent for a date range.
// The same daily time range applies to every date from StartDate to EndDate.
type LeaveRequest struct {
	ID         int64
	DoctorID   int64
	StartDate  time.Time
	EndDate    time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Reason     string
	Status     LeaveStatus
	AdminNotes *string
	ReviewedBy *int64
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsFullDay returns true if the leave spans the whole working day
func (l *LeaveRequest) IsFullDay() bool {
	return l.StartTime.Equal(DayStart) && l.EndTime.Equal(DayEnd)
}

// IsApproved returns true if the leave blocks the doctor's schedule
func (l *LeaveRequest) IsApproved() bool {
	return l.Status == LeaveStatusApproved
}

// IsPending returns true if the leave still awaits review
func (l *LeaveRequest) IsPending() bool {
	return l.Status == LeaveStatusPending
}

// Covers reports whether the given date falls inside the leave date range
func (l *LeaveRequest) Covers(date time.Time) bool {
	d := TruncateDate(date)
	return !d.Before(TruncateDate(l.StartDate)) && !d.After(TruncateDate(l.EndDate))
}

// Dates returns every date of the leave range in ascending order
func (l *LeaveRequest) Dates() []time.Time {
	dates := make([]time.Time, 0)
	end := TruncateDate(l.EndDate)
	for d := TruncateDate(l.StartDate); !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// LeavesFilter фильтр для получения заявок на отпуск
type LeavesFilter struct {
	DoctorID *int64       // Фильтр по врачу
	Status   *LeaveStatus // Фильтр по статусу
	Date     *time.Time   // Только заявки, покрывающие дату
}
