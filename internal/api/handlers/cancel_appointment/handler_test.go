package cancel_appointment

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
	id  int64
	req *models.CancelAppointmentRequest
	err error
}

func (f *fakeService) Cancel(_ context.Context, id int64, req *models.CancelAppointmentRequest) error {
	f.id = id
	f.req = req
	return f.err
}

func patch(svc *fakeService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/cancel", NewHandler(svc, logger.NewNop()).Handle)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPatch, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	}
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 20, Role: domain.RolePatient}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_WithReason(t *testing.T) {
	svc := &fakeService{}
	rec := patch(svc, "/appointments/5/cancel", `{"cancellationReason":"feeling better"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.id)
	assert.Equal(t, int64(20), svc.req.Actor.UserID)
	assert.Equal(t, "feeling better", *svc.req.CancellationReason)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeService{}
	rec := patch(svc, "/appointments/5/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.req.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
	}{
		{"bad id", "/appointments/x/cancel", "", nil, http.StatusBadRequest},
		{"bad body", "/appointments/5/cancel", `{"reason":1}`, nil, http.StatusBadRequest},
		{"too long reason", "/appointments/5/cancel", `{"cancellationReason":"` + strings.Repeat("a", 501) + `"}`, nil, http.StatusBadRequest},
		{"not found", "/appointments/5/cancel", "", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"forbidden", "/appointments/5/cancel", "", appointments.ErrAccessDenied, http.StatusForbidden},
		{"cannot cancel", "/appointments/5/cancel", "", appointments.ErrCannotCancel, http.StatusConflict},
		{"internal", "/appointments/5/cancel", "", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
