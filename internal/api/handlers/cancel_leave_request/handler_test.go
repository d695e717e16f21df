package cancel_leave_request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/leaves"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
)

type fakeService struct {
	id    int64
	actor domain.Actor
	err   error
}

func (f *fakeService) Cancel(_ context.Context, id int64, actor domain.Actor) error {
	f.id = id
	f.actor = actor
	return f.err
}

func patch(svc *fakeService, path string, withActor bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/leave-requests/{leaveId}/cancel", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 7, Role: domain.RoleDoctor}))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}

	rec := patch(svc, "/leave-requests/11/cancel", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(11), svc.id)
	assert.Equal(t, int64(7), svc.actor.UserID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		withActor  bool
		err        error
		wantStatus int
	}{
		{"bad id", "/leave-requests/x/cancel", true, nil, http.StatusBadRequest},
		{"no actor", "/leave-requests/11/cancel", false, nil, http.StatusUnauthorized},
		{"not found", "/leave-requests/11/cancel", true, leaves.ErrLeaveNotFound, http.StatusNotFound},
		{"not owner", "/leave-requests/11/cancel", true, leaves.ErrAccessDenied, http.StatusForbidden},
		{"not pending", "/leave-requests/11/cancel", true, leaves.ErrNotPending, http.StatusConflict},
		{"internal", "/leave-requests/11/cancel", true, leaves.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tt.err}, tt.path, tt.withActor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
