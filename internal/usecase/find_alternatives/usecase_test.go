package find_alternatives

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// fakeChecker считает доступными только моменты из списка
type fakeChecker struct {
	available map[int64]bool
}

func newFakeChecker(slots ...time.Time) *fakeChecker {
	available := make(map[int64]bool, len(slots))
	for _, s := range slots {
		available[s.Unix()] = true
	}
	return &fakeChecker{available: available}
}

func (f *fakeChecker) Check(_ context.Context, _ int64, start time.Time, _ int) (*domain.AvailabilityResult, error) {
	if f.available[start.Unix()] {
		return &domain.AvailabilityResult{Available: true}, nil
	}
	return &domain.AvailabilityResult{Available: false, Reason: domain.ReasonConflict}, nil
}

type fakeConfigProvider struct {
	config *domain.ScheduleConfig
}

func (f *fakeConfigProvider) ConfigFor(_ context.Context, _ int64) (*domain.ScheduleConfig, error) {
	return f.config, nil
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

func newTestUseCase(checker AvailabilityChecker, granularity int) *UseCase {
	config := &domain.ScheduleConfig{
		SlotGranularityMinutes: granularity,
		MaxAdvanceDays:         90,
	}
	return NewUseCase(checker, &fakeConfigProvider{config: config}, testCalendar(), nopLogger{})
}

// monday понедельник 18 марта 2024
func monday(hour, minute int) time.Time {
	return time.Date(2024, time.March, 18, hour, minute, 0, 0, time.UTC)
}

func TestExecute_OrdersByProximity(t *testing.T) {
	// Желаемое: понедельник 14:00. Свободны понедельник 14:30 и вторник 14:00
	checker := newFakeChecker(monday(14, 30), monday(14, 0).AddDate(0, 0, 1))
	uc := newTestUseCase(checker, 30)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Preferred:       monday(14, 0),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)

	// Тот же день ближе, чем то же время на следующий день
	assert.Equal(t, monday(14, 30), resp.Candidates[0].StartAt)
	assert.Equal(t, StageSameDayNearby, resp.Candidates[0].Stage)
	assert.Equal(t, 30, resp.Candidates[0].Score)

	assert.Equal(t, monday(14, 0).AddDate(0, 0, 1), resp.Candidates[1].StartAt)
	assert.Equal(t, StageSameTimeLater, resp.Candidates[1].Stage)
	assert.Equal(t, domain.DayOffsetScoreWeight, resp.Candidates[1].Score)

	assert.True(t, resp.Candidates[0].Score < resp.Candidates[1].Score)
}

func TestExecute_DropsNearDuplicates(t *testing.T) {
	// Два свободных слота в 15 минутах друг от друга: остаётся ближайший
	checker := newFakeChecker(monday(14, 15), monday(14, 30))
	uc := newTestUseCase(checker, 15)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Preferred:       monday(14, 0),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, monday(14, 15), resp.Candidates[0].StartAt)
}

func TestExecute_RespectsCount(t *testing.T) {
	checker := newFakeChecker(
		monday(13, 0),
		monday(15, 0),
		monday(14, 0).AddDate(0, 0, 1),
		monday(14, 0).AddDate(0, 0, 2),
	)
	uc := newTestUseCase(checker, 30)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Preferred:       monday(14, 0),
		DurationMinutes: 30,
		Count:           2,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Candidates, 2)
}

func TestExecute_SamePeriodStage(t *testing.T) {
	// Ничего рядом и ничего в то же время, но через 5 дней свободно
	// в том же периоде дня (после полудня)
	checker := newFakeChecker(monday(15, 30).AddDate(0, 0, 4))
	uc := newTestUseCase(checker, 30)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Preferred:       monday(14, 0),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, monday(15, 30).AddDate(0, 0, 4), resp.Candidates[0].StartAt)
	assert.Equal(t, StageSamePeriod, resp.Candidates[0].Stage)
}

func TestExecute_ExhaustedHorizonIsEmptyList(t *testing.T) {
	uc := newTestUseCase(newFakeChecker(), 30)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		Preferred:       monday(14, 0),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeChecker(), 30)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero resource", &Request{Preferred: monday(14, 0)}},
		{"zero preferred", &Request{ResourceID: 1}},
		{"duration too short", &Request{ResourceID: 1, Preferred: monday(14, 0), DurationMinutes: 1}},
		{"count too large", &Request{ResourceID: 1, Preferred: monday(14, 0), Count: 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
