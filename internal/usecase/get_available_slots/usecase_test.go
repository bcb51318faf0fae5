package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-SchedulingService/internal/datetime"
	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// fakeChecker отклоняет моменты из списка busy, остальные считает доступными
type fakeChecker struct {
	busy map[int64]bool
}

func (f *fakeChecker) Check(_ context.Context, _ int64, start time.Time, _ int) (*domain.AvailabilityResult, error) {
	if f.busy[start.Unix()] {
		return &domain.AvailabilityResult{Available: false, Reason: domain.ReasonConflict}, nil
	}
	return &domain.AvailabilityResult{Available: true}, nil
}

type fakeConfigProvider struct {
	config *domain.ScheduleConfig
}

func (f *fakeConfigProvider) ConfigFor(_ context.Context, _ int64) (*domain.ScheduleConfig, error) {
	return f.config, nil
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

func newTestUseCase(checker AvailabilityChecker, granularity int) *UseCase {
	config := &domain.ScheduleConfig{
		SlotGranularityMinutes: granularity,
		MinNoticeMinutes:       30,
		MaxAdvanceDays:         90,
	}
	catalog := domain.AppointmentTypeCatalog{"consultation": 30, "procedure": 60}

	uc := NewUseCase(
		checker,
		&fakeConfigProvider{config: config},
		datetime.NewResolver(time.UTC, granularity),
		testCalendar(),
		catalog,
		nopLogger{},
	)
	uc.timeProvider = &fakeClock{now: time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_ReturnsGridOfSlots(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{}, 60)

	date := friday(0, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Date:            &date,
		AppointmentType: "consultation",
	})
	require.NoError(t, err)

	// 09:00-17:00 с шагом в час: последний 30-минутный слот начинается в 16:00
	assert.True(t, resp.IsOpen)
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, friday(9, 0), resp.Slots[0].StartAt)
	assert.Equal(t, friday(9, 30), resp.Slots[0].EndAt)
	assert.Equal(t, friday(16, 0), resp.Slots[7].StartAt)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_FiltersUnavailableSlots(t *testing.T) {
	busy := &fakeChecker{busy: map[int64]bool{
		friday(12, 0).Unix(): true,
		friday(14, 0).Unix(): true,
	}}
	uc := newTestUseCase(busy, 60)

	date := friday(0, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Date:            &date,
		AppointmentType: "consultation",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 6)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, friday(12, 0), slot.StartAt)
		assert.NotEqual(t, friday(14, 0), slot.StartAt)
	}
}

func TestExecute_ClosedDayIsEmptyNotError(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{}, 60)

	saturday := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Date:            &saturday,
		AppointmentType: "consultation",
	})
	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ResolvesDateText(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{}, 60)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		DateText:        "tomorrow",
		AppointmentType: "consultation",
	})
	require.NoError(t, err)
	assert.Equal(t, friday(0, 0), resp.Date)
}

func TestExecute_LongerAppointmentsFitFewerSlots(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{}, 60)

	date := friday(0, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Date:            &date,
		AppointmentType: "procedure",
	})
	require.NoError(t, err)

	// Часовой приём: последний слот начинается в 16:00, конец ровно в закрытие
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, friday(16, 0), resp.Slots[7].StartAt)
	assert.Equal(t, friday(17, 0), resp.Slots[7].EndAt)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{}, 60)

	past := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Date:            &past,
		AppointmentType: "consultation",
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{}, 60)

	far := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Date:            &far,
		AppointmentType: "consultation",
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_UnknownAppointmentType(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{}, 60)

	date := friday(0, 0)
	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Date:            &date,
		AppointmentType: "surgery",
	})
	assert.ErrorIs(t, err, ErrUnknownAppointmentType)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{}, 60)
	date := friday(0, 0)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero resource", &Request{Date: &date}},
		{"no date", &Request{ResourceID: 1}},
		{"duration out of range", &Request{ResourceID: 1, Date: &date, DurationMinutes: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
