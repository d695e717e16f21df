package create_leave_request

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves/models"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// CreateLeaveRequest HTTP request model
// doctorId обязателен только для администратора. Без времени отпуск на полный день
type CreateLeaveRequest struct {
	DoctorID  int64   `json:"doctorId" validate:"omitempty,gt=0"`
	StartDate string  `json:"startDate" validate:"required"` // "2025-04-01"
	EndDate   string  `json:"endDate" validate:"required"`   // "2025-04-03"
	StartTime *string `json:"startTime,omitempty"`           // "00:00"
	EndTime   *string `json:"endTime,omitempty"`             // "23:59"
	Reason    string  `json:"reason" validate:"required,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLeaveRequest) ToServiceRequest(actor domain.Actor) (*models.CreateLeaveRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	startTime, endTime := domain.DayStart, domain.DayEnd
	if r.StartTime != nil {
		if startTime, err = types.NewTimeStringFromString(*r.StartTime); err != nil {
			return nil, fmt.Errorf("startTime: %w", err)
		}
	}
	if r.EndTime != nil {
		if endTime, err = types.NewTimeStringFromString(*r.EndTime); err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
	}

	doctorID := r.DoctorID
	if doctorID == 0 {
		doctorID = actor.UserID
	}

	return &models.CreateLeaveRequest{
		Actor:     actor,
		DoctorID:  doctorID,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
		Reason:    r.Reason,
	}, nil
}
