package cancel_appointment

import (
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(actor domain.Actor) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		Actor:              actor,
		CancellationReason: r.CancellationReason,
	}
}
