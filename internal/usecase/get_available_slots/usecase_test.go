package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	slotsCache "github.com/m04kA/HMS-AppointmentService/internal/infra/cache/slots"
	registryClient "github.com/m04kA/HMS-AppointmentService/internal/integrations/registry"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	calls        int
}

func (f *fakeAppointmentRepo) List(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.calls++
	return f.appointments, f.err
}

type fakeLeaveRepo struct {
	leaves []*domain.LeaveRequest
	calls  int
}

func (f *fakeLeaveRepo) List(_ context.Context, _ domain.LeavesFilter) ([]*domain.LeaveRequest, error) {
	f.calls++
	return f.leaves, nil
}

type fakeScheduleRepo struct {
	windows []*domain.DoctorAvailability
}

func (f *fakeScheduleRepo) ListByDoctor(_ context.Context, _ int64) ([]*domain.DoctorAvailability, error) {
	return f.windows, nil
}

type fakeRegistry struct {
	staff *registryClient.Staff
	err   error
}

func (f *fakeRegistry) GetStaff(_ context.Context, _ int64) (*registryClient.Staff, error) {
	return f.staff, f.err
}

type fakeCache struct {
	entry  *slotsCache.Entry
	getErr error
	stored *slotsCache.Entry
}

func (f *fakeCache) Get(_ context.Context, _ int64, _ time.Time, _ bool) (*slotsCache.Entry, error) {
	if f.entry != nil {
		return f.entry, nil
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	return nil, slotsCache.ErrCacheMiss
}

func (f *fakeCache) Set(_ context.Context, _ int64, _ time.Time, _ bool, entry *slotsCache.Entry) error {
	f.stored = entry
	return nil
}

type fakeMetrics struct {
	hits, misses int
	computed     int
}

func (f *fakeMetrics) ObserveSlotsComputed(_ bool, count int) { f.computed = count }

func (f *fakeMetrics) ObserveSlotsCache(hit bool) {
	if hit {
		f.hits++
		return
	}
	f.misses++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	appointments *fakeAppointmentRepo
	leaves       *fakeLeaveRepo
	schedule     *fakeScheduleRepo
	registry     *fakeRegistry
	cache        *fakeCache
	metrics      *fakeMetrics
	uc           *UseCase
}

// now: вторник 2025-04-01 10:00 UTC
var now = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

// wednesday дата запроса по умолчанию
var wednesday = time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		appointments: &fakeAppointmentRepo{},
		leaves:       &fakeLeaveRepo{},
		schedule:     &fakeScheduleRepo{},
		registry:     &fakeRegistry{staff: &registryClient.Staff{ID: 7, Role: registryClient.StaffRoleDoctor}},
		cache:        &fakeCache{},
		metrics:      &fakeMetrics{},
	}
	f.uc = NewUseCase(f.appointments, f.leaves, f.schedule, f.registry, f.cache, f.metrics, Settings{
		StandardOpenTime:   types.MustTimeString("08:00"),
		StandardCloseTime:  types.MustTimeString("22:00"),
		SlotGranularity:    30 * time.Minute,
		AdvanceBookingDays: 30,
	}, logger.NewNop()).WithTimeProvider(fixedTime{now: now})
	return f
}

func appointmentAt(start, end string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		DoctorID:  7,
		Date:      wednesday,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		Status:    status,
	}
}

func labels(slots []domain.AvailableSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label
	}
	return out
}

func TestExecute_StandardHoursWithBooking(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{
		appointmentAt("09:00", "09:30", domain.StatusScheduled),
		appointmentAt("10:00", "10:30", domain.StatusCancelled),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 27)
	assert.Equal(t, "08:00 - 08:30", resp.Slots[0].Label)
	assert.Equal(t, "08:30 - 09:00", resp.Slots[1].Label)
	assert.Equal(t, "09:30 - 10:00", resp.Slots[2].Label)
	assert.Contains(t, labels(resp.Slots), "10:00 - 10:30")
	assert.Empty(t, resp.Message)
	assert.Empty(t, resp.Warning)
	require.NotNil(t, f.cache.stored)
	assert.Len(t, f.cache.stored.Slots, 27)
	assert.Equal(t, 27, f.metrics.computed)
	assert.Equal(t, 1, f.metrics.misses)
}

func TestExecute_DoctorScheduleWindows(t *testing.T) {
	f := newFixture()
	f.schedule.windows = []*domain.DoctorAvailability{
		{DoctorID: 7, DayOfWeek: domain.Wednesday, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("10:00")},
		{DoctorID: 7, DayOfWeek: domain.Wednesday, StartTime: types.MustTimeString("14:00"), EndTime: types.MustTimeString("14:45")},
		{DoctorID: 7, DayOfWeek: domain.Friday, StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("12:00")},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"09:00 - 09:30",
		"09:30 - 10:00",
		"14:00 - 14:30",
		"14:30 - 14:45",
	}, labels(resp.Slots))
}

func TestExecute_ScheduleDefinedForOtherDaysOnlyUsesStandardHours(t *testing.T) {
	f := newFixture()
	f.schedule.windows = []*domain.DoctorAvailability{
		{DoctorID: 7, DayOfWeek: domain.Monday, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("12:00")},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 28)
	assert.Equal(t, "08:00 - 08:30", resp.Slots[0].Label)
	assert.Equal(t, "21:30 - 22:00", resp.Slots[27].Label)
	assert.Empty(t, resp.Message)
}

func TestExecute_PartialLeave(t *testing.T) {
	f := newFixture()
	f.leaves.leaves = []*domain.LeaveRequest{{
		DoctorID:  7,
		StartDate: wednesday,
		EndDate:   wednesday,
		StartTime: types.MustTimeString("12:00"),
		EndTime:   types.MustTimeString("14:00"),
		Status:    domain.LeaveStatusApproved,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 24)
	assert.NotContains(t, labels(resp.Slots), "12:00 - 12:30")
	assert.NotContains(t, labels(resp.Slots), "13:30 - 14:00")
	assert.Contains(t, labels(resp.Slots), "14:00 - 14:30")
	assert.Equal(t, WarningOnLeave, resp.Warning)
}

func TestExecute_FullDayLeave(t *testing.T) {
	f := newFixture()
	f.leaves.leaves = []*domain.LeaveRequest{{
		DoctorID:  7,
		StartDate: now,
		EndDate:   wednesday.AddDate(0, 0, 2),
		StartTime: domain.DayStart,
		EndTime:   domain.DayEnd,
		Status:    domain.LeaveStatusApproved,
	}}

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, MessageNoSlots, resp.Message)
	assert.Equal(t, WarningOnLeave, resp.Warning)
}

func TestExecute_EmergencyIgnoresLeave(t *testing.T) {
	f := newFixture()
	f.leaves.leaves = []*domain.LeaveRequest{{
		DoctorID:  7,
		StartDate: wednesday,
		EndDate:   wednesday,
		StartTime: domain.DayStart,
		EndTime:   domain.DayEnd,
		Status:    domain.LeaveStatusApproved,
	}}
	f.appointments.appointments = []*domain.Appointment{appointmentAt("10:00", "10:30", domain.StatusConfirmed)}

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday, IsEmergency: true})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 94)
	assert.Equal(t, "00:00 - 00:15 (Emergency)", resp.Slots[0].Label)
	assert.Equal(t, "23:45 - 23:59 (Emergency)", resp.Slots[len(resp.Slots)-1].Label)
	assert.NotContains(t, labels(resp.Slots), "10:00 - 10:15 (Emergency)")
	assert.Equal(t, MessageEmergency, resp.Message)
	assert.Empty(t, resp.Warning)
	assert.Zero(t, f.leaves.calls)
}

func TestExecute_EmergencyFallbackIsNotCached(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{appointmentAt("00:00", "23:59", domain.StatusScheduled)}

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday, IsEmergency: true})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "10:00 - 10:15 (Emergency)", resp.Slots[0].Label)
	assert.Nil(t, f.cache.stored)
}

func TestExecute_CacheHit(t *testing.T) {
	f := newFixture()
	f.cache.entry = &slotsCache.Entry{
		Slots: []domain.AvailableSlot{{
			StartTime: types.MustTimeString("08:00"),
			EndTime:   types.MustTimeString("08:30"),
			Label:     "08:00 - 08:30",
		}},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
	assert.Zero(t, f.appointments.calls)
	assert.Equal(t, 1, f.metrics.hits)
}

func TestExecute_CacheErrorDoesNotFail(t *testing.T) {
	f := newFixture()
	f.cache.getErr = errors.New("redis down")

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: wednesday})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 28)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fixture)
		req     *Request
		wantErr error
	}{
		{
			name:    "invalid doctor id",
			req:     &Request{DoctorID: 0, Date: wednesday},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     &Request{DoctorID: 7},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "doctor not found",
			setup:   func(f *fixture) { f.registry.err = registryClient.ErrStaffNotFound },
			req:     &Request{DoctorID: 7, Date: wednesday},
			wantErr: ErrDoctorNotFound,
		},
		{
			name:    "registry unavailable",
			setup:   func(f *fixture) { f.registry.err = registryClient.ErrInternal },
			req:     &Request{DoctorID: 7, Date: wednesday},
			wantErr: ErrInternal,
		},
		{
			name:    "not a doctor",
			setup:   func(f *fixture) { f.registry.staff = &registryClient.Staff{ID: 7, Role: "nurse"} },
			req:     &Request{DoctorID: 7, Date: wednesday},
			wantErr: ErrNotADoctor,
		},
		{
			name:    "past date",
			req:     &Request{DoctorID: 7, Date: now.AddDate(0, 0, -1)},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "beyond booking horizon",
			req:     &Request{DoctorID: 7, Date: now.AddDate(0, 0, 31)},
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name:    "repository failure",
			setup:   func(f *fixture) { f.appointments.err = errors.New("db down") },
			req:     &Request{DoctorID: 7, Date: wednesday},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: 7, Date: now})

	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", resp.Date.Format(domain.DateFormat))
}
