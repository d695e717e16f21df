package create_leave_request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves/models"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
)

type fakeService struct {
	req *models.CreateLeaveRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateLeaveRequest) (*models.CreateLeaveResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.CreateLeaveResponse{
		Leave:                   models.LeaveResponse{ID: 11, DoctorID: req.DoctorID, Status: "PENDING"},
		ConflictingAppointments: []models.ConflictingAppointment{},
	}, nil
}

func post(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 7, Role: domain.RoleDoctor}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_FullDayByDefault(t *testing.T) {
	svc := &fakeService{}
	rec := post(svc, `{"startDate":"2025-04-01","endDate":"2025-04-03","reason":"conference"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), svc.req.DoctorID)
	assert.Equal(t, "00:00", svc.req.StartTime.String())
	assert.Equal(t, "23:59", svc.req.EndTime.String())
	assert.Equal(t, "2025-04-03", svc.req.EndDate.Format("2006-01-02"))
}

func TestHandle_PartialDay(t *testing.T) {
	svc := &fakeService{}
	rec := post(svc, `{"startDate":"2025-04-01","endDate":"2025-04-01","startTime":"12:00","endTime":"15:00","reason":"dentist"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "12:00", svc.req.StartTime.String())
	assert.Equal(t, "15:00", svc.req.EndTime.String())
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"startDate":"2025-04-01","endDate":"2025-04-03","reason":"conference"}`

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"missing reason", `{"startDate":"2025-04-01","endDate":"2025-04-03"}`, nil, http.StatusBadRequest},
		{"bad date", `{"startDate":"April 1","endDate":"2025-04-03","reason":"x"}`, nil, http.StatusBadRequest},
		{"bad time", `{"startDate":"2025-04-01","endDate":"2025-04-03","startTime":"25:00","reason":"x"}`, nil, http.StatusBadRequest},
		{"forbidden", valid, leaves.ErrAccessDenied, http.StatusForbidden},
		{"date range", valid, leaves.ErrInvalidDateRange, http.StatusBadRequest},
		{"time range", valid, leaves.ErrInvalidTimeRange, http.StatusBadRequest},
		{"past", valid, leaves.ErrDateInPast, http.StatusBadRequest},
		{"internal", valid, leaves.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
