package create_leave_request

import (
	"context"

	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves/models"
)

type LeaveService interface {
	Create(ctx context.Context, req *models.CreateLeaveRequest) (*models.CreateLeaveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
