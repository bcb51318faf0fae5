package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-SchedulingService/internal/datetime"
	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

type scriptedChecker struct {
	result   *domain.AvailabilityResult
	start    time.Time
	duration int
}

func (c *scriptedChecker) Check(_ context.Context, _ int64, start time.Time, durationMinutes int) (*domain.AvailabilityResult, error) {
	c.start = start
	c.duration = durationMinutes
	return c.result, nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testCalendar() *domain.BusinessCalendar {
	workday := domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"}
	return &domain.BusinessCalendar{
		Monday:    workday,
		Tuesday:   workday,
		Wednesday: workday,
		Thursday:  workday,
		Friday:    workday,
		Location:  time.UTC,
	}
}

func friday(hour, minute int) time.Time {
	return time.Date(2024, time.March, 15, hour, minute, 0, 0, time.UTC)
}

func newTestUseCase(checker *scriptedChecker) *UseCase {
	catalog := domain.AppointmentTypeCatalog{"consultation": 30}

	uc := NewUseCase(
		checker,
		datetime.NewResolver(time.UTC, 15),
		testCalendar(),
		catalog,
		nopLogger{},
	)
	uc.timeProvider = &fakeClock{now: time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_Available(t *testing.T) {
	checker := &scriptedChecker{result: &domain.AvailabilityResult{Available: true}}
	uc := newTestUseCase(checker)

	at := friday(14, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		At:              &at,
		AppointmentType: "consultation",
	})
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, at, resp.StartAt)
	assert.Equal(t, 30, resp.DurationMinutes)

	// Длительность взята из каталога типов
	assert.Equal(t, 30, checker.duration)
}

func TestExecute_TextDateTime(t *testing.T) {
	checker := &scriptedChecker{result: &domain.AvailabilityResult{Available: true}}
	uc := newTestUseCase(checker)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1,
		DateText:   "tomorrow",
		TimeText:   "2pm",
	})
	require.NoError(t, err)
	assert.Equal(t, friday(14, 0), resp.StartAt)

	// Без типа и явной длительности действует дефолт
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
}

func TestExecute_ConflictCarriesIntervals(t *testing.T) {
	checker := &scriptedChecker{result: &domain.AvailabilityResult{
		Available: false,
		Reason:    domain.ReasonConflict,
		Conflicts: []*domain.Booking{
			{ID: 7, StartAt: friday(14, 0), DurationMinutes: 30},
		},
	}}
	uc := newTestUseCase(checker)

	at := friday(14, 15)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		At:              &at,
		AppointmentType: "consultation",
	})
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, string(domain.ReasonConflict), resp.Reason)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(7), resp.Conflicts[0].BookingID)
	assert.Equal(t, friday(14, 0), resp.Conflicts[0].StartAt)
}

func TestExecute_ParseErrorPropagates(t *testing.T) {
	uc := newTestUseCase(&scriptedChecker{result: &domain.AvailabilityResult{Available: true}})

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1,
		DateText:   "tomorrow",
		TimeText:   "pretty late",
	})
	require.Error(t, err)

	var parseErr *datetime.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "pretty late", parseErr.Fragment)
}

func TestExecute_UnknownAppointmentType(t *testing.T) {
	uc := newTestUseCase(&scriptedChecker{result: &domain.AvailabilityResult{Available: true}})

	at := friday(14, 0)
	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		At:              &at,
		AppointmentType: "surgery",
	})
	assert.ErrorIs(t, err, ErrUnknownAppointmentType)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&scriptedChecker{result: &domain.AvailabilityResult{Available: true}})
	at := friday(14, 0)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero resource", &Request{At: &at}},
		{"no start", &Request{ResourceID: 1}},
		{"duration out of range", &Request{ResourceID: 1, At: &at, DurationMinutes: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
