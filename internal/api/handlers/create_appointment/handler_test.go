package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/HMS-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	req *createAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &createAppointment.Response{
		ID:        100,
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      "REGULAR",
		Status:    "SCHEDULED",
		CreatedBy: req.CreatedBy,
		CreatedAt: time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC),
	}, nil
}

func post(uc *fakeUseCase, actor *domain.Actor, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

const validBody = `{"doctorId":7,"date":"2025-04-01","startTime":"09:00","endTime":"09:30","reason":"checkup"}`

func TestHandle_PatientBooksSelf(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(uc, &domain.Actor{UserID: 20, Role: domain.RolePatient}, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(20), uc.req.PatientID)
	assert.Equal(t, int64(20), uc.req.CreatedBy)
	assert.Equal(t, "09:30", uc.req.EndTime.String())

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "2025-04-01", body.Date)
	assert.Equal(t, "SCHEDULED", body.Status)
}

func TestHandle_ReceptionistBooksPatient(t *testing.T) {
	uc := &fakeUseCase{}
	body := `{"patientId":21,"doctorId":7,"date":"2025-04-01","startTime":"09:00","endTime":"09:30","isEmergency":true}`
	rec := post(uc, &domain.Actor{UserID: 2, Role: domain.RoleReceptionist}, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(21), uc.req.PatientID)
	assert.Equal(t, int64(2), uc.req.CreatedBy)
	assert.True(t, uc.req.IsEmergency)
}

func TestHandle_Errors(t *testing.T) {
	patient := &domain.Actor{UserID: 20, Role: domain.RolePatient}
	staff := &domain.Actor{UserID: 2, Role: domain.RoleReceptionist}

	tests := []struct {
		name       string
		actor      *domain.Actor
		body       string
		ucErr      error
		wantStatus int
	}{
		{"no actor", nil, validBody, nil, http.StatusUnauthorized},
		{"malformed body", patient, `{`, nil, http.StatusBadRequest},
		{"missing doctor", patient, `{"date":"2025-04-01","startTime":"09:00","endTime":"09:30"}`, nil, http.StatusBadRequest},
		{"bad type", patient, `{"doctorId":7,"date":"2025-04-01","startTime":"09:00","endTime":"09:30","type":"URGENT"}`, nil, http.StatusBadRequest},
		{"bad time", patient, `{"doctorId":7,"date":"2025-04-01","startTime":"9am","endTime":"09:30"}`, nil, http.StatusBadRequest},
		{"other patient", patient, `{"patientId":21,"doctorId":7,"date":"2025-04-01","startTime":"09:00","endTime":"09:30"}`, nil, http.StatusForbidden},
		{"staff without patient", staff, validBody, nil, http.StatusBadRequest},
		{"doctor not found", patient, validBody, createAppointment.ErrDoctorNotFound, http.StatusNotFound},
		{"patient not found", patient, validBody, createAppointment.ErrPatientNotFound, http.StatusNotFound},
		{"outside hours", patient, validBody, createAppointment.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"on leave", patient, validBody, createAppointment.ErrDoctorOnLeave, http.StatusConflict},
		{"doctor busy", patient, validBody, createAppointment.ErrDoctorBusy, http.StatusConflict},
		{"patient busy", patient, validBody, createAppointment.ErrPatientBusy, http.StatusConflict},
		{"internal", patient, validBody, createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.ucErr}, tt.actor, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
