package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByResourceWithFilter(_ context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.ResourceID != filter.ResourceID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		if filter.From != nil && b.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartAt.Before(*filter.To) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
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
		Breaks: []domain.BreakWindow{
			{Start: "12:00", End: "13:00"},
		},
		Location: time.UTC,
	}
}

func testConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		SlotGranularityMinutes: 15,
		BufferMinutes:          5,
		MinNoticeMinutes:       30,
		MaxAdvanceDays:         90,
		MaxConsecutive:         4,
	}
}

// at пятница 15 марта 2024
func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 15, hour, minute, 0, 0, time.UTC)
}

func newTestCalculator(repo *fakeBookingRepo, config *domain.ScheduleConfig, now time.Time) *Calculator {
	calc := NewCalculator(repo, &fakeConfigProvider{config: config}, testCalendar(), nopLogger{})
	calc.timeProvider = &fakeClock{now: now}
	return calc
}

func TestCheck_Available(t *testing.T) {
	calc := newTestCalculator(&fakeBookingRepo{}, testConfig(), at(9, 0))

	result, err := calc.Check(context.Background(), 1, at(10, 0), 30)
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Reason)
}

func TestCheck_OutsideHours(t *testing.T) {
	calc := newTestCalculator(&fakeBookingRepo{}, testConfig(), at(9, 0))

	tests := []struct {
		name  string
		start time.Time
	}{
		{"before opening", at(8, 0)},
		{"after closing", at(17, 0)},
		{"crosses closing", at(16, 45)},
		{"inside lunch break", at(12, 30)},
		{"weekend", time.Date(2024, time.March, 16, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Check(context.Background(), 1, tt.start, 30)
			require.NoError(t, err)
			assert.False(t, result.Available)
			assert.Equal(t, domain.ReasonOutsideHours, result.Reason)
		})
	}
}

func TestCheck_TooSoon(t *testing.T) {
	// До начала 10 минут при минимальном запасе в 30
	calc := newTestCalculator(&fakeBookingRepo{}, testConfig(), at(9, 50))

	result, err := calc.Check(context.Background(), 1, at(10, 0), 30)
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, domain.ReasonTooSoon, result.Reason)
}

func TestCheck_Conflict(t *testing.T) {
	existing := &domain.Booking{
		ID:              7,
		ResourceID:      1,
		StartAt:         at(10, 0),
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}
	calc := newTestCalculator(&fakeBookingRepo{bookings: []*domain.Booking{existing}}, testConfig(), at(9, 0))

	result, err := calc.Check(context.Background(), 1, at(10, 15), 30)
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, domain.ReasonConflict, result.Reason)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, int64(7), result.Conflicts[0].ID)
}

func TestCheck_BufferMakesBorderingIntervalConflict(t *testing.T) {
	existing := &domain.Booking{
		ID:              7,
		ResourceID:      1,
		StartAt:         at(10, 0),
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}
	repo := &fakeBookingRepo{bookings: []*domain.Booking{existing}}

	// Буфер 5 минут: интервал впритык к существующему конфликтует
	calc := newTestCalculator(repo, testConfig(), at(9, 0))
	result, err := calc.Check(context.Background(), 1, at(10, 30), 30)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonConflict, result.Reason)

	// Без буфера граничащие интервалы не конфликтуют
	noBuffer := testConfig()
	noBuffer.BufferMinutes = 0
	noBuffer.MaxConsecutive = 0
	calc = newTestCalculator(repo, noBuffer, at(9, 0))
	result, err = calc.Check(context.Background(), 1, at(10, 30), 30)
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheck_CancelledBookingIgnored(t *testing.T) {
	cancelled := &domain.Booking{
		ID:              7,
		ResourceID:      1,
		StartAt:         at(10, 0),
		DurationMinutes: 30,
		Status:          domain.StatusCancelled,
	}
	calc := newTestCalculator(&fakeBookingRepo{bookings: []*domain.Booking{cancelled}}, testConfig(), at(9, 0))

	result, err := calc.Check(context.Background(), 1, at(10, 0), 30)
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheck_RestRequired(t *testing.T) {
	// Три существующих бронирования впритык: 09:00-09:30, 09:30-10:00, 10:00-10:30
	repo := &fakeBookingRepo{}
	for i := 0; i < 3; i++ {
		repo.bookings = append(repo.bookings, &domain.Booking{
			ID:              int64(i + 1),
			ResourceID:      1,
			StartAt:         at(9, i*30),
			DurationMinutes: 30,
			Status:          domain.StatusScheduled,
		})
	}

	config := testConfig()
	config.BufferMinutes = 0

	// Четвертое подряд без промежутка нарушает правило отдыха
	calc := newTestCalculator(repo, config, at(8, 0))
	result, err := calc.Check(context.Background(), 1, at(10, 30), 30)
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, domain.ReasonRestRequired, result.Reason)

	// С промежутком в 30 минут цепочка разорвана
	result, err = calc.Check(context.Background(), 1, at(11, 0), 30)
	require.NoError(t, err)
	assert.True(t, result.Available)

	// Отключенное правило пропускает любые цепочки
	config.MaxConsecutive = 0
	result, err = calc.Check(context.Background(), 1, at(10, 30), 30)
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckExcluding_IgnoresOwnInterval(t *testing.T) {
	existing := &domain.Booking{
		ID:              7,
		ResourceID:      1,
		StartAt:         at(10, 0),
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}
	calc := newTestCalculator(&fakeBookingRepo{bookings: []*domain.Booking{existing}}, testConfig(), at(9, 0))

	// Без исключения собственный интервал конфликтует сам с собой
	result, err := calc.Check(context.Background(), 1, at(10, 0), 30)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonConflict, result.Reason)

	result, err = calc.CheckExcluding(context.Background(), 1, at(10, 0), 30, 7)
	require.NoError(t, err)
	assert.True(t, result.Available)
}
