package update_doctor_schedule

import (
	"fmt"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// WindowRequest HTTP модель окна приема
type WindowRequest struct {
	StartTime string `json:"startTime" validate:"required"` // "09:00"
	EndTime   string `json:"endTime" validate:"required"`   // "13:00"
}

// UpdateDayScheduleRequest HTTP request model
// Пустой список окон делает день нерабочим
type UpdateDayScheduleRequest struct {
	Windows []WindowRequest `json:"windows" validate:"max=8,dive"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateDayScheduleRequest) ToServiceRequest(doctorID int64, day domain.DayOfWeek, actor domain.Actor) (*models.ReplaceDayRequest, error) {
	windows := make([]models.WindowRequest, 0, len(r.Windows))
	for i, w := range r.Windows {
		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("windows[%d].startTime: %w", i, err)
		}
		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("windows[%d].endTime: %w", i, err)
		}
		windows = append(windows, models.WindowRequest{StartTime: start, EndTime: end})
	}

	return &models.ReplaceDayRequest{
		Actor:     actor,
		DoctorID:  doctorID,
		DayOfWeek: day,
		Windows:   windows,
	}, nil
}
