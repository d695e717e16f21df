package models

import (
	"errors"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе заявки
	ErrInvalidStatus = errors.New("invalid leave status")

	// ErrInvalidDecision возвращается при некорректном решении по заявке
	ErrInvalidDecision = errors.New("invalid review decision")
)

// Decision решение администратора по заявке
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status возвращает итоговый статус заявки для решения
func (d Decision) Status() (domain.LeaveStatus, error) {
	switch d {
	case DecisionApprove:
		return domain.LeaveStatusApproved, nil
	case DecisionReject:
		return domain.LeaveStatusRejected, nil
	}
	return "", ErrInvalidDecision
}

// Request модели

// CreateLeaveRequest запрос на создание заявки на отпуск
type CreateLeaveRequest struct {
	Actor     domain.Actor
	DoctorID  int64
	StartDate time.Time
	EndDate   time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    string
}

// ReviewLeaveRequest запрос на рассмотрение заявки
type ReviewLeaveRequest struct {
	Actor      domain.Actor
	Decision   Decision
	AdminNotes *string
}

// Response модели

// LeaveResponse ответ с данными заявки
type LeaveResponse struct {
	ID         int64   `json:"id"`
	DoctorID   int64   `json:"doctorId"`
	StartDate  string  `json:"startDate"` // "2025-04-01"
	EndDate    string  `json:"endDate"`   // "2025-04-03"
	StartTime  string  `json:"startTime"` // "00:00"
	EndTime    string  `json:"endTime"`   // "23:59"
	IsFullDay  bool    `json:"isFullDay"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
	ReviewedBy *int64  `json:"reviewedBy,omitempty"`
	ReviewedAt *string `json:"reviewedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConflictingAppointment активная запись, попадающая в период отпуска
type ConflictingAppointment struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"patientId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// CreateLeaveResponse ответ на создание заявки
type CreateLeaveResponse struct {
	Leave                   LeaveResponse            `json:"leaveRequest"`
	ConflictingAppointments []ConflictingAppointment `json:"conflictingAppointments"`
	Warning                 string                   `json:"warning,omitempty"`
}

// LeaveListResponse ответ со списком заявок
type LeaveListResponse struct {
	LeaveRequests []LeaveResponse `json:"leaveRequests"`
}

// Методы конвертации

// FromDomainLeave конвертирует domain модель в DTO
func FromDomainLeave(l *domain.LeaveRequest) *LeaveResponse {
	if l == nil {
		return nil
	}

	resp := &LeaveResponse{
		ID:         l.ID,
		DoctorID:   l.DoctorID,
		StartDate:  l.StartDate.Format(domain.DateFormat),
		EndDate:    l.EndDate.Format(domain.DateFormat),
		StartTime:  l.StartTime.String(),
		EndTime:    l.EndTime.String(),
		IsFullDay:  l.IsFullDay(),
		Reason:     l.Reason,
		Status:     string(l.Status),
		AdminNotes: l.AdminNotes,
		ReviewedBy: l.ReviewedBy,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}

	if l.ReviewedAt != nil {
		reviewedStr := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedStr
	}

	return resp
}

// FromDomainLeaveList конвертирует список domain моделей в DTO
func FromDomainLeaveList(leaves []*domain.LeaveRequest) *LeaveListResponse {
	resp := &LeaveListResponse{
		LeaveRequests: make([]LeaveResponse, 0, len(leaves)),
	}

	for _, l := range leaves {
		if item := FromDomainLeave(l); item != nil {
			resp.LeaveRequests = append(resp.LeaveRequests, *item)
		}
	}

	return resp
}

// FromDomainConflicts конвертирует записи в список конфликтов
func FromDomainConflicts(appointments []*domain.Appointment) []ConflictingAppointment {
	conflicts := make([]ConflictingAppointment, 0, len(appointments))
	for _, a := range appointments {
		conflicts = append(conflicts, ConflictingAppointment{
			ID:        a.ID,
			PatientID: a.PatientID,
			Date:      a.Date.Format(domain.DateFormat),
			StartTime: a.StartTime.String(),
			EndTime:   a.EndTime.String(),
			Status:    string(a.Status),
		})
	}
	return conflicts
}

// ToDomainLeaveStatus конвертирует строку в domain.LeaveStatus с валидацией
func ToDomainLeaveStatus(status string) (domain.LeaveStatus, error) {
	s := domain.LeaveStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
