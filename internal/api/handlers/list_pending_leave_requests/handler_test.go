package list_pending_leave_requests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	actor domain.Actor
	resp  *models.LeaveListResponse
	err   error
}

func (f *fakeService) ListPending(_ context.Context, actor domain.Actor) (*models.LeaveListResponse, error) {
	f.actor = actor
	return f.resp, f.err
}

func get(svc *fakeService, actor *domain.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/leave-requests/pending", nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{resp: &models.LeaveListResponse{LeaveRequests: []models.LeaveResponse{
		{ID: 11, DoctorID: 7, Status: "PENDING"},
	}}}

	rec := get(svc, &domain.Actor{UserID: 1, Role: domain.RoleAdmin})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RoleAdmin, svc.actor.Role)

	var body models.LeaveListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.LeaveRequests, 1)
	assert.Equal(t, int64(11), body.LeaveRequests[0].ID)
}

func TestHandle_Errors(t *testing.T) {
	doctor := &domain.Actor{UserID: 7, Role: domain.RoleDoctor}

	tests := []struct {
		name       string
		actor      *domain.Actor
		err        error
		wantStatus int
	}{
		{"no actor", nil, nil, http.StatusUnauthorized},
		{"not admin", doctor, leaves.ErrAccessDenied, http.StatusForbidden},
		{"internal", doctor, leaves.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(&fakeService{err: tt.err}, tt.actor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
