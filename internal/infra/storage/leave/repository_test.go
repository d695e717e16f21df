package leave

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/ptr"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

func newRepositoryMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepositoryMock(t)
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO leave_requests (doctor_id,start_date,end_date,start_time,end_time,reason,status) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at, updated_at")).
		WithArgs(int64(7), from, to, "00:00", "23:59", "conference", "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	leave, err := repo.Create(context.Background(), &domain.LeaveRequest{
		DoctorID:  7,
		StartDate: from,
		EndDate:   to,
		StartTime: domain.DayStart,
		EndTime:   domain.DayEnd,
		Reason:    "conference",
		Status:    domain.LeaveStatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), leave.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ApprovedCoveringDate(t *testing.T) {
	repo, mock := newRepositoryMock(t)
	date := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	status := domain.LeaveStatusApproved

	mock.ExpectQuery(regexp.QuoteMeta("FROM leave_requests WHERE doctor_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $4 ORDER BY start_date ASC, start_time ASC")).
		WithArgs(int64(7), "APPROVED", date, date).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(3), int64(7), date, date, "12:00:00", "14:00:00", "dentist", "APPROVED",
			"ok", int64(1), now, now, now,
		))

	leaves, err := repo.List(context.Background(), domain.LeavesFilter{
		DoctorID: ptr.Ptr(int64(7)),
		Status:   &status,
		Date:     &date,
	})

	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, types.MustTimeString("12:00"), leaves[0].StartTime)
	require.NotNil(t, leaves[0].ReviewedBy)
	assert.Equal(t, int64(1), *leaves[0].ReviewedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepositoryMock(t)

	mock.ExpectQuery("FROM leave_requests WHERE id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, ErrLeaveNotFound)
}

func TestRepository_Review(t *testing.T) {
	repo, mock := newRepositoryMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE leave_requests SET status = $1, admin_notes = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW() WHERE id = $4")).
		WithArgs("REJECTED", "short staffed", int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Review(context.Background(), 3, domain.LeaveStatusRejected, 1, ptr.Ptr("short staffed"))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newRepositoryMock(t)

	mock.ExpectExec("UPDATE leave_requests SET status").
		WithArgs("CANCELLED", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 9, domain.LeaveStatusCancelled)

	assert.ErrorIs(t, err, ErrLeaveNotFound)
}
