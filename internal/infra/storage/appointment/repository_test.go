package appointment

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/HMS-AppointmentService/pkg/ptr"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

func newRepositoryMock(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), db, mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepositoryMock(t)
	now := time.Now()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments (patient_id,doctor_id,appointment_date,start_time,end_time,appointment_type,status,is_emergency,reason,notes,created_by) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id, created_at, updated_at")).
		WithArgs(int64(5), int64(7), date, "09:00", "09:30", "REGULAR", "SCHEDULED", false, "checkup", nil, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	created, err := repo.Create(context.Background(), &domain.Appointment{
		PatientID: 5,
		DoctorID:  7,
		Date:      date,
		StartTime: types.MustTimeString("09:00"),
		EndTime:   types.MustTimeString("09:30"),
		Type:      domain.TypeRegular,
		Status:    domain.StatusScheduled,
		Reason:    ptr.Ptr("checkup"),
		CreatedBy: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepositoryMock(t)
	now := time.Now()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE id = $1")).
		WithArgs(int64(11)).
		WillReturnRows(appointmentRows().AddRow(
			int64(11), int64(5), int64(7), date, "09:00:00", "09:30:00", "FOLLOW_UP", "CONFIRMED",
			false, nil, "bring results", int64(3), nil, nil, now, now,
		))

	a, err := repo.GetByID(context.Background(), 11)

	require.NoError(t, err)
	assert.Equal(t, int64(7), a.DoctorID)
	assert.Equal(t, "09:00", a.StartTime.String())
	assert.Equal(t, "09:30", a.EndTime.String())
	assert.Equal(t, domain.TypeFollowUp, a.Type)
	assert.Equal(t, domain.StatusConfirmed, a.Status)
	assert.Nil(t, a.Reason)
	require.NotNil(t, a.Notes)
	assert.Equal(t, "bring results", *a.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepositoryMock(t)

	mock.ExpectQuery("FROM appointments WHERE id").
		WithArgs(int64(404)).
		WillReturnRows(appointmentRows())

	_, err := repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ActiveForDoctorOnDateInTransaction(t *testing.T) {
	repo, db, mock := newRepositoryMock(t)
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE doctor_id = $1 AND appointment_date >= $2 AND appointment_date <= $3 AND status IN ($4,$5) ORDER BY start_time ASC FOR UPDATE")).
		WithArgs(int64(7), date, date, "SCHEDULED", "CONFIRMED").
		WillReturnRows(appointmentRows().
			AddRow(int64(1), int64(5), int64(7), date, "09:00", "09:30", "REGULAR", "SCHEDULED", false, nil, nil, int64(5), nil, nil, now, now).
			AddRow(int64(2), int64(6), int64(7), date, "10:00", "10:30", "REGULAR", "CONFIRMED", false, nil, nil, int64(6), nil, nil, now, now))
	mock.ExpectCommit()

	tx, err := dbmetrics.Wrap(db, nil).BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	list, err := repo.List(ctx, domain.AppointmentsFilter{
		DoctorID:  ptr.Ptr(int64(7)),
		StartDate: &date,
		EndDate:   &date,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, list, 2)
	assert.Equal(t, "10:00", list[1].StartTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ByPatientWithStatus(t *testing.T) {
	repo, _, mock := newRepositoryMock(t)
	status := domain.StatusCompleted

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE patient_id = $1 AND status = $2 ORDER BY appointment_date ASC, start_time ASC")).
		WithArgs(int64(5), "COMPLETED").
		WillReturnRows(appointmentRows())

	list, err := repo.List(context.Background(), domain.AppointmentsFilter{
		PatientID: ptr.Ptr(int64(5)),
		Status:    &status,
	})

	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_QueryError(t *testing.T) {
	repo, _, mock := newRepositoryMock(t)

	mock.ExpectQuery("FROM appointments").WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), domain.AppointmentsFilter{IncludeInactive: true})

	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, mock := newRepositoryMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW() WHERE id = $3")).
		WithArgs("CANCELLED", "patient request", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 11, ptr.Ptr("patient request"))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, _, mock := newRepositoryMock(t)

	mock.ExpectExec("UPDATE appointments SET status").
		WithArgs("COMPLETED", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 404, domain.StatusCompleted)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
