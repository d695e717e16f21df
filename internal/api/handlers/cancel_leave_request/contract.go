package cancel_leave_request

import (
	"context"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

type LeaveService interface {
	Cancel(ctx context.Context, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
