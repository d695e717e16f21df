package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/HMS-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
// PatientID можно не указывать, если запись создает сам пациент
type CreateAppointmentRequest struct {
	PatientID   int64   `json:"patientId" validate:"omitempty,gt=0"`
	DoctorID    int64   `json:"doctorId" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required"`      // "2025-04-01"
	StartTime   string  `json:"startTime" validate:"required"` // "09:00"
	EndTime     string  `json:"endTime" validate:"required"`   // "09:30"
	Type        string  `json:"type" validate:"omitempty,oneof=REGULAR FOLLOW_UP EMERGENCY"`
	IsEmergency bool    `json:"isEmergency"`
	Reason      *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	PatientID   int64   `json:"patientId"`
	DoctorID    int64   `json:"doctorId"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	IsEmergency bool    `json:"isEmergency"`
	Reason      *string `json:"reason,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	CreatedBy   int64   `json:"createdBy"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(createdBy int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createAppointment.Request{
		CreatedBy:   createdBy,
		PatientID:   r.PatientID,
		DoctorID:    r.DoctorID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Type:        domain.AppointmentType(r.Type),
		IsEmergency: r.IsEmergency,
		Reason:      r.Reason,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		PatientID:   resp.PatientID,
		DoctorID:    resp.DoctorID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Type:        resp.Type,
		Status:      resp.Status,
		IsEmergency: resp.IsEmergency,
		Reason:      resp.Reason,
		Notes:       resp.Notes,
		CreatedBy:   resp.CreatedBy,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
