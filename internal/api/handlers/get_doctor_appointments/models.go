package get_doctor_appointments

import (
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день и имеет приоритет над from/to
func ToServiceRequest(r *http.Request, doctorID int64, actor domain.Actor) (*models.GetDoctorAppointmentsRequest, error) {
	req := &models.GetDoctorAppointmentsRequest{
		Actor:    actor,
		DoctorID: doctorID,
		Status:   handlers.QueryString(r, "status"),
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	if date != nil {
		req.StartDate = date
		req.EndDate = date
	} else {
		if req.StartDate, err = handlers.QueryDate(r, "from"); err != nil {
			return nil, err
		}
		if req.EndDate, err = handlers.QueryDate(r, "to"); err != nil {
			return nil, err
		}
	}

	if req.IncludeInactive, err = handlers.QueryBool(r, "includeInactive"); err != nil {
		return nil, err
	}

	return req, nil
}
