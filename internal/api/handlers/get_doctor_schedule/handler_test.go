package get_doctor_schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
)

type fakeService struct {
	doctorID int64
	resp     *models.ScheduleResponse
	err      error
}

func (f *fakeService) GetDoctorSchedule(_ context.Context, doctorID int64) (*models.ScheduleResponse, error) {
	f.doctorID = doctorID
	return f.resp, f.err
}

func get(svc *fakeService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/doctors/{doctorId}/schedule", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{resp: &models.ScheduleResponse{
		DoctorID: 7,
		Days: []models.DayScheduleResponse{{
			DayOfWeek: 0,
			DayName:   "Monday",
			Windows:   []models.WindowResponse{{ID: 1, StartTime: "09:00", EndTime: "13:00"}},
		}},
	}}

	rec := get(svc, "/doctors/7/schedule")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.doctorID)
	assert.JSONEq(t, `{
		"doctorId": 7,
		"days": [{"dayOfWeek": 0, "dayName": "Monday", "windows": [{"id": 1, "startTime": "09:00", "endTime": "13:00"}]}]
	}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{"bad doctor id", "/doctors/abc/schedule", nil, http.StatusBadRequest},
		{"internal", "/doctors/7/schedule", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(&fakeService{err: tt.err}, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
