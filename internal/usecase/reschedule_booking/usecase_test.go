package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-SchedulingService/internal/datetime"
	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	storage "github.com/m04kA/PMS-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
)

// fakeRepo хранит бронирования по ID и коду подтверждения
type fakeRepo struct {
	byID          map[int64]*domain.Booking
	rescheduledTo map[int64]time.Time
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	repo := &fakeRepo{
		byID:          make(map[int64]*domain.Booking),
		rescheduledTo: make(map[int64]time.Time),
	}
	for _, b := range bookings {
		repo.byID[b.ID] = b
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.byID[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeRepo) GetByConfirmationCode(_ context.Context, code string) (*domain.Booking, error) {
	for _, b := range f.byID {
		if b.ConfirmationCode == code {
			return b, nil
		}
	}
	return nil, storage.ErrBookingNotFound
}

func (f *fakeRepo) Reschedule(_ context.Context, id int64, newStart time.Time) error {
	if _, ok := f.byID[id]; !ok {
		return storage.ErrBookingNotFound
	}
	f.rescheduledTo[id] = newStart
	return nil
}

type scriptedChecker struct {
	result    *domain.AvailabilityResult
	excludeID int64
}

func (c *scriptedChecker) CheckExcluding(_ context.Context, _ int64, _ time.Time, _ int, excludeID int64) (*domain.AvailabilityResult, error) {
	c.excludeID = excludeID
	return c.result, nil
}

type fakeAlternatives struct {
	candidates []find_alternatives.Candidate
}

func (f *fakeAlternatives) Execute(_ context.Context, req *find_alternatives.Request) (*find_alternatives.Response, error) {
	return &find_alternatives.Response{
		ResourceID: req.ResourceID,
		Preferred:  req.Preferred,
		Candidates: f.candidates,
	}, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:               7,
		ConfirmationCode: "APT-SRL4K2-9F3A",
		ResourceID:       1,
		SubjectID:        42,
		StartAt:          friday(10, 0),
		DurationMinutes:  30,
		AppointmentType:  "consultation",
		Status:           domain.StatusScheduled,
		RescheduleCount:  0,
	}
}

func newTestUseCase(repo *fakeRepo, checker *scriptedChecker, alternatives *fakeAlternatives) *UseCase {
	if checker == nil {
		checker = &scriptedChecker{result: &domain.AvailabilityResult{Available: true}}
	}
	if alternatives == nil {
		alternatives = &fakeAlternatives{}
	}

	uc := NewUseCase(
		repo,
		checker,
		alternatives,
		datetime.NewResolver(time.UTC, 15),
		testCalendar(),
		passthroughTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeClock{now: time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_ReschedulesByID(t *testing.T) {
	repo := newFakeRepo(activeBooking())
	checker := &scriptedChecker{result: &domain.AvailabilityResult{Available: true}}
	uc := newTestUseCase(repo, checker, nil)

	newStart := friday(15, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		Identifier: "7",
		NewStartAt: &newStart,
	})
	require.NoError(t, err)

	assert.Equal(t, newStart, resp.StartAt)
	assert.Equal(t, string(domain.StatusRescheduled), resp.Status)
	assert.Equal(t, 1, resp.RescheduleCount)
	assert.Equal(t, newStart, repo.rescheduledTo[7])

	// Собственный интервал исключён из проверки доступности
	assert.Equal(t, int64(7), checker.excludeID)
}

func TestExecute_ReschedulesByConfirmationCode(t *testing.T) {
	repo := newFakeRepo(activeBooking())
	uc := newTestUseCase(repo, nil, nil)

	newStart := friday(15, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		Identifier: "APT-SRL4K2-9F3A",
		NewStartAt: &newStart,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
}

func TestExecute_ResolvesTextDateTime(t *testing.T) {
	repo := newFakeRepo(activeBooking())
	uc := newTestUseCase(repo, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		Identifier: "7",
		DateText:   "tomorrow",
		TimeText:   "3pm",
	})
	require.NoError(t, err)
	assert.Equal(t, friday(15, 0), resp.StartAt)
}

func TestExecute_UnavailableLeavesBookingUntouched(t *testing.T) {
	repo := newFakeRepo(activeBooking())
	checker := &scriptedChecker{result: &domain.AvailabilityResult{Available: false, Reason: domain.ReasonConflict}}
	alternatives := &fakeAlternatives{candidates: []find_alternatives.Candidate{
		{StartAt: friday(15, 30), EndAt: friday(16, 0), Score: 30},
	}}
	uc := newTestUseCase(repo, checker, alternatives)

	newStart := friday(15, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		Identifier: "7",
		NewStartAt: &newStart,
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	require.NotNil(t, resp)

	// Бронирование не тронуто: исходное время, исходный статус
	assert.Equal(t, friday(10, 0), resp.StartAt)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, 0, resp.RescheduleCount)
	require.Len(t, resp.Alternatives, 1)
	assert.Equal(t, friday(15, 30), resp.Alternatives[0].StartAt)

	assert.Empty(t, repo.rescheduledTo)
}

func TestExecute_UnavailabilityReasons(t *testing.T) {
	tests := []struct {
		reason domain.UnavailabilityReason
		want   error
	}{
		{domain.ReasonOutsideHours, ErrOutsideHours},
		{domain.ReasonTooSoon, ErrTooSoon},
		{domain.ReasonRestRequired, ErrRestRequired},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			repo := newFakeRepo(activeBooking())
			checker := &scriptedChecker{result: &domain.AvailabilityResult{Available: false, Reason: tt.reason}}
			uc := newTestUseCase(repo, checker, nil)

			newStart := friday(15, 0)
			resp, err := uc.Execute(context.Background(), &Request{
				Identifier: "7",
				NewStartAt: &newStart,
			})
			assert.ErrorIs(t, err, tt.want)
			require.NotNil(t, resp)
			assert.Equal(t, friday(10, 0), resp.StartAt)
		})
	}
}

func TestExecute_NotActive(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			booking := activeBooking()
			booking.Status = status
			uc := newTestUseCase(newFakeRepo(booking), nil, nil)

			newStart := friday(15, 0)
			_, err := uc.Execute(context.Background(), &Request{
				Identifier: "7",
				NewStartAt: &newStart,
			})
			assert.ErrorIs(t, err, ErrNotActive)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), nil, nil)

	newStart := friday(15, 0)
	_, err := uc.Execute(context.Background(), &Request{
		Identifier: "404",
		NewStartAt: &newStart,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), nil, nil)
	newStart := friday(15, 0)

	tests := []struct {
		name string
		req  *Request
	}{
		{"empty identifier", &Request{NewStartAt: &newStart}},
		{"no new start", &Request{Identifier: "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_BadIdentifierFormat(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), nil, nil)

	newStart := friday(15, 0)
	_, err := uc.Execute(context.Background(), &Request{
		Identifier: "not-a-code",
		NewStartAt: &newStart,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
