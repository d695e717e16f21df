package review_leave_request

import (
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves/models"
)

// ReviewLeaveRequest HTTP request model
type ReviewLeaveRequest struct {
	Decision   string  `json:"decision" validate:"required,oneof=approve reject"`
	AdminNotes *string `json:"adminNotes,omitempty" validate:"omitempty,max=1000"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReviewLeaveRequest) ToServiceRequest(actor domain.Actor) *models.ReviewLeaveRequest {
	return &models.ReviewLeaveRequest{
		Actor:      actor,
		Decision:   models.Decision(r.Decision),
		AdminNotes: r.AdminNotes,
	}
}
