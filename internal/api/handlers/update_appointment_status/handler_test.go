package update_appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/appointments"
	"github.com/m04kA/HMS-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
)

type fakeService struct {
	id    int64
	req   *models.UpdateStatusRequest
	err   error
	calls int
}

func (f *fakeService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) error {
	f.calls++
	f.id = id
	f.req = req
	return f.err
}

func patch(svc *fakeService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/status", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 7, Role: domain.RoleDoctor}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}

	rec := patch(svc, "/appointments/5/status", `{"status":"COMPLETED"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.id)
	assert.Equal(t, "COMPLETED", svc.req.Status)
	assert.Equal(t, int64(7), svc.req.Actor.UserID)
}

func TestHandle_RejectsStatusOutsideAllowedSet(t *testing.T) {
	for _, status := range []string{"CANCELLED", "SCHEDULED", "completed", ""} {
		svc := &fakeService{}
		rec := patch(svc, "/appointments/5/status", `{"status":"`+status+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code, status)
		assert.Zero(t, svc.calls, status)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
	}{
		{"bad id", "/appointments/x/status", `{"status":"CONFIRMED"}`, nil, http.StatusBadRequest},
		{"empty body", "/appointments/5/status", ``, nil, http.StatusBadRequest},
		{"unknown field", "/appointments/5/status", `{"status":"CONFIRMED","extra":1}`, nil, http.StatusBadRequest},
		{"not found", "/appointments/5/status", `{"status":"CONFIRMED"}`, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"forbidden", "/appointments/5/status", `{"status":"CONFIRMED"}`, appointments.ErrAccessDenied, http.StatusForbidden},
		{"invalid transition", "/appointments/5/status", `{"status":"MISSED"}`, appointments.ErrInvalidStatusTransition, http.StatusConflict},
		{"invalid input", "/appointments/5/status", `{"status":"CONFIRMED"}`, appointments.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/appointments/5/status", `{"status":"CONFIRMED"}`, appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
