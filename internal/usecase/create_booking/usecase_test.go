package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-SchedulingService/internal/datetime"
	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	"github.com/m04kA/PMS-SchedulingService/internal/integrations/identityservice"
	"github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
	"github.com/m04kA/PMS-SchedulingService/pkg/ptr"
)

// fakeRepo потокобезопасное in-memory хранилище бронирований
type fakeRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeRepo) active() []*domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if b.IsActive() {
			result = append(result, b)
		}
	}
	return result
}

// scriptedChecker возвращает заранее заданный результат проверки
type scriptedChecker struct {
	result *domain.AvailabilityResult
}

func (c *scriptedChecker) Check(_ context.Context, _ int64, _ time.Time, _ int) (*domain.AvailabilityResult, error) {
	return c.result, nil
}

// storeChecker ищет конфликты по содержимому хранилища
// Вместе с сериализующим txManager воспроизводит гонку за один слот
type storeChecker struct {
	repo *fakeRepo
}

func (c *storeChecker) Check(_ context.Context, resourceID int64, start time.Time, durationMinutes int) (*domain.AvailabilityResult, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, b := range c.repo.active() {
		if b.ResourceID == resourceID && b.Overlaps(start, end, 0) {
			return &domain.AvailabilityResult{
				Available: false,
				Reason:    domain.ReasonConflict,
				Conflicts: []*domain.Booking{b},
			}, nil
		}
	}
	return &domain.AvailabilityResult{Available: true}, nil
}

// fakeAlternatives возвращает заранее заданный список кандидатов
type fakeAlternatives struct {
	candidates []find_alternatives.Candidate
	err        error
}

func (f *fakeAlternatives) Execute(_ context.Context, req *find_alternatives.Request) (*find_alternatives.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &find_alternatives.Response{
		ResourceID: req.ResourceID,
		Preferred:  req.Preferred,
		Candidates: f.candidates,
	}, nil
}

// fakeIdentity клиент сервиса идентификации
type fakeIdentity struct {
	subjects map[int64]*identityservice.Subject
	err      error
}

func (f *fakeIdentity) FindOrCreateSubject(_ context.Context, req *identityservice.FindOrCreateRequest) (*identityservice.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &identityservice.Subject{ID: 100, Name: req.Name, Phone: req.Phone, Created: true}, nil
}

func (f *fakeIdentity) GetSubject(_ context.Context, subjectID int64) (*identityservice.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	subject, ok := f.subjects[subjectID]
	if !ok {
		return nil, identityservice.ErrSubjectNotFound
	}
	return subject, nil
}

// serialTxManager сериализует транзакции глобальным мьютексом
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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

// now четверг 14 марта 2024, 10:00 UTC
func testNow() time.Time {
	return time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func friday(hour, minute int) time.Time {
	return time.Date(2024, time.March, 15, hour, minute, 0, 0, time.UTC)
}

type useCaseDeps struct {
	repo         *fakeRepo
	checker      AvailabilityChecker
	alternatives *fakeAlternatives
	identity     *fakeIdentity
}

func newTestUseCase(deps useCaseDeps) *UseCase {
	if deps.repo == nil {
		deps.repo = &fakeRepo{}
	}
	if deps.checker == nil {
		deps.checker = &scriptedChecker{result: &domain.AvailabilityResult{Available: true}}
	}
	if deps.alternatives == nil {
		deps.alternatives = &fakeAlternatives{}
	}
	if deps.identity == nil {
		deps.identity = &fakeIdentity{}
	}

	catalog := domain.AppointmentTypeCatalog{"consultation": 30, "procedure": 60}

	uc := NewUseCase(
		deps.repo,
		deps.checker,
		deps.alternatives,
		deps.identity,
		datetime.NewResolver(time.UTC, 15),
		testCalendar(),
		catalog,
		&serialTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeClock{now: testNow()}
	return uc
}

func TestExecute_CreatesBooking(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(useCaseDeps{repo: repo})

	start := friday(14, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectPhone:    "+79990001122",
		SubjectName:     "Анна Петрова",
		StartAt:         &start,
		AppointmentType: "consultation",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(100), resp.SubjectID)
	assert.Equal(t, start, resp.StartAt)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.True(t, domain.LooksLikeConfirmationCode(resp.ConfirmationCode))
	require.NotNil(t, resp.SubjectName)
	assert.Equal(t, "Анна Петрова", *resp.SubjectName)

	require.Len(t, repo.bookings, 1)
	assert.Equal(t, resp.ConfirmationCode, repo.bookings[0].ConfirmationCode)
}

func TestExecute_ResolvesTextDateTime(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(useCaseDeps{repo: repo})

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectPhone:    "+79990001122",
		DateText:        "tomorrow",
		TimeText:        "2pm",
		AppointmentType: "consultation",
	})
	require.NoError(t, err)
	assert.Equal(t, friday(14, 0), resp.StartAt)
}

func TestExecute_KnownSubjectID(t *testing.T) {
	identity := &fakeIdentity{subjects: map[int64]*identityservice.Subject{
		42: {ID: 42, Name: "Иван Сидоров"},
	}}
	uc := newTestUseCase(useCaseDeps{identity: identity})

	start := friday(14, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectID:       ptr.Ptr(int64(42)),
		StartAt:         &start,
		AppointmentType: "consultation",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.SubjectID)
}

func TestExecute_SubjectNotFound(t *testing.T) {
	uc := newTestUseCase(useCaseDeps{identity: &fakeIdentity{subjects: map[int64]*identityservice.Subject{}}})

	start := friday(14, 0)
	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectID:       ptr.Ptr(int64(99)),
		StartAt:         &start,
		AppointmentType: "consultation",
	})
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestExecute_IdentityDegraded(t *testing.T) {
	uc := newTestUseCase(useCaseDeps{identity: &fakeIdentity{err: identityservice.ErrServiceDegraded}})

	start := friday(14, 0)
	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectPhone:    "+79990001122",
		StartAt:         &start,
		AppointmentType: "consultation",
	})
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

func TestExecute_UnknownAppointmentType(t *testing.T) {
	uc := newTestUseCase(useCaseDeps{})

	start := friday(14, 0)
	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectPhone:    "+79990001122",
		StartAt:         &start,
		AppointmentType: "surgery",
	})
	assert.ErrorIs(t, err, ErrUnknownAppointmentType)
}

func TestExecute_ParseErrorPropagates(t *testing.T) {
	uc := newTestUseCase(useCaseDeps{})

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectPhone:    "+79990001122",
		DateText:        "whenever",
		TimeText:        "2pm",
		AppointmentType: "consultation",
	})
	require.Error(t, err)

	var parseErr *datetime.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "whenever", parseErr.Fragment)
}

func TestExecute_ConflictReturnsAlternatives(t *testing.T) {
	alternatives := &fakeAlternatives{candidates: []find_alternatives.Candidate{
		{StartAt: friday(14, 30), EndAt: friday(15, 0), Score: 30},
		{StartAt: friday(15, 0).AddDate(0, 0, 3), EndAt: friday(15, 30).AddDate(0, 0, 3), Score: 30060},
	}}
	repo := &fakeRepo{}
	uc := newTestUseCase(useCaseDeps{
		repo:         repo,
		checker:      &scriptedChecker{result: &domain.AvailabilityResult{Available: false, Reason: domain.ReasonConflict}},
		alternatives: alternatives,
	})

	start := friday(14, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectPhone:    "+79990001122",
		StartAt:         &start,
		AppointmentType: "consultation",
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	require.NotNil(t, resp)
	require.Len(t, resp.Alternatives, 2)
	assert.Equal(t, friday(14, 30), resp.Alternatives[0].StartAt)
	assert.Empty(t, repo.bookings)
}

func TestExecute_AlternativesFailureDoesNotHideConflict(t *testing.T) {
	uc := newTestUseCase(useCaseDeps{
		checker:      &scriptedChecker{result: &domain.AvailabilityResult{Available: false, Reason: domain.ReasonConflict}},
		alternatives: &fakeAlternatives{err: find_alternatives.ErrInternal},
	})

	start := friday(14, 0)
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      1,
		SubjectPhone:    "+79990001122",
		StartAt:         &start,
		AppointmentType: "consultation",
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	require.NotNil(t, resp)
	assert.Empty(t, resp.Alternatives)
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
			uc := newTestUseCase(useCaseDeps{
				checker: &scriptedChecker{result: &domain.AvailabilityResult{Available: false, Reason: tt.reason}},
			})

			start := friday(14, 0)
			resp, err := uc.Execute(context.Background(), &Request{
				ResourceID:      1,
				SubjectPhone:    "+79990001122",
				StartAt:         &start,
				AppointmentType: "consultation",
			})
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, resp)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(useCaseDeps{})
	start := friday(14, 0)
	longNotes := string(make([]byte, domain.MaxNotesLength+1))

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero resource", &Request{SubjectPhone: "+7999", StartAt: &start, AppointmentType: "consultation"}},
		{"no subject", &Request{ResourceID: 1, StartAt: &start, AppointmentType: "consultation"}},
		{"no start", &Request{ResourceID: 1, SubjectPhone: "+7999", AppointmentType: "consultation"}},
		{"no type or duration", &Request{ResourceID: 1, SubjectPhone: "+7999", StartAt: &start}},
		{"duration out of range", &Request{ResourceID: 1, SubjectPhone: "+7999", StartAt: &start, DurationMinutes: 1000}},
		{"notes too long", &Request{ResourceID: 1, SubjectPhone: "+7999", StartAt: &start, AppointmentType: "consultation", Notes: &longNotes}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// TestExecute_ConcurrentRequestsForSameSlot из N одновременных запросов
// на один интервал выигрывает ровно один
func TestExecute_ConcurrentRequestsForSameSlot(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(useCaseDeps{
		repo:    repo,
		checker: &storeChecker{repo: repo},
	})

	const workers = 10
	start := friday(14, 0)

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				ResourceID:      1,
				SubjectPhone:    "+79990001122",
				StartAt:         &start,
				AppointmentType: "consultation",
			})
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	assert.Len(t, repo.bookings, 1)
}
