package list_doctor_leave_requests

import (
	"context"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves/models"
)

type LeaveService interface {
	ListByDoctor(ctx context.Context, doctorID int64, actor domain.Actor, status *string) (*models.LeaveListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
