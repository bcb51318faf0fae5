package find_alternatives

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// Этапы поиска альтернатив, от самых близких к желаемому к самым далёким
const (
	StageSameDayNearby  = "same_day_nearby"
	StageSameTimeLater  = "same_time_later_day"
	StageSamePeriod     = "same_period_later_day"
	StageFirstAvailable = "first_available"
)

// UseCase use case для поиска альтернативных слотов
//
// Поиск идёт этапами, каждый следующий этап запускается только пока
// результат недобран. Кандидаты ближе 30 минут друг к другу считаются
// дубликатами, остаётся первый найденный
type UseCase struct {
	checker        AvailabilityChecker
	configProvider ConfigProvider
	calendar       *domain.BusinessCalendar
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	checker AvailabilityChecker,
	configProvider ConfigProvider,
	calendar *domain.BusinessCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		checker:        checker,
		configProvider: configProvider,
		calendar:       calendar,
		logger:         logger,
	}
}

// Execute выполняет use case поиска альтернатив
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAlternatives: resource=%d, preferred=%s, duration=%d, count=%d",
		req.ResourceID, req.Preferred.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.DurationMinutes, req.Count)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAlternatives: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}

	count := req.Count
	if count == 0 {
		count = domain.DefaultAlternativeCount
	}

	// 2. Получаем конфигурацию расчёта слотов для ресурса
	config, err := uc.configProvider.ConfigFor(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("FindAlternatives: failed to get config for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	preferred := req.Preferred.In(uc.calendar.Location)

	resp := &Response{
		ResourceID:      req.ResourceID,
		Preferred:       preferred,
		DurationMinutes: duration,
	}

	// 3. Этапы поиска: каждый запускается только пока результат недобран
	stages := []func(context.Context, int64, time.Time, int, *domain.ScheduleConfig) ([]Candidate, error){
		uc.stageSameDayNearby,
		uc.stageSameTimeLater,
		uc.stageSamePeriod,
		uc.stageFirstAvailable,
	}

	for _, stage := range stages {
		if len(resp.Candidates) >= count {
			break
		}

		candidates, err := stage(ctx, req.ResourceID, preferred, duration, config)
		if err != nil {
			return nil, err
		}

		resp.Candidates = mergeCandidates(resp.Candidates, candidates, count)
	}

	uc.logger.Info("FindAlternatives: resource=%d, found %d candidates", req.ResourceID, len(resp.Candidates))
	return resp, nil
}

// stageSameDayNearby этап 1: тот же день, в пределах часа от желаемого времени
func (uc *UseCase) stageSameDayNearby(
	ctx context.Context,
	resourceID int64,
	preferred time.Time,
	duration int,
	config *domain.ScheduleConfig,
) ([]Candidate, error) {
	step := time.Duration(config.SlotGranularityMinutes) * time.Minute
	window := time.Duration(domain.NearbyWindowMinutes) * time.Minute

	var candidates []Candidate
	for offset := step; offset <= window; offset += step {
		for _, start := range []time.Time{preferred.Add(-offset), preferred.Add(offset)} {
			candidate, ok, err := uc.probe(ctx, resourceID, start, duration, preferred, StageSameDayNearby)
			if err != nil {
				return nil, err
			}
			if ok {
				candidates = append(candidates, candidate)
			}
		}
	}

	sortCandidates(candidates)
	return candidates, nil
}

// stageSameTimeLater этап 2: то же время в ближайшие дни
func (uc *UseCase) stageSameTimeLater(
	ctx context.Context,
	resourceID int64,
	preferred time.Time,
	duration int,
	_ *domain.ScheduleConfig,
) ([]Candidate, error) {
	var candidates []Candidate
	for day := 1; day <= domain.SameTimeHorizonDays; day++ {
		start := preferred.AddDate(0, 0, day)
		candidate, ok, err := uc.probe(ctx, resourceID, start, duration, preferred, StageSameTimeLater)
		if err != nil {
			return nil, err
		}
		if ok {
			candidates = append(candidates, candidate)
		}
	}

	sortCandidates(candidates)
	return candidates, nil
}

// stageSamePeriod этап 3: тот же период дня (утро/день/вечер) в ближайшие дни
func (uc *UseCase) stageSamePeriod(
	ctx context.Context,
	resourceID int64,
	preferred time.Time,
	duration int,
	config *domain.ScheduleConfig,
) ([]Candidate, error) {
	periodStart, periodEnd := periodOfDay(preferred)
	step := time.Duration(config.SlotGranularityMinutes) * time.Minute

	var candidates []Candidate
	for day := 1; day <= domain.SamePeriodHorizonDays; day++ {
		date := preferred.AddDate(0, 0, day)
		from := time.Date(date.Year(), date.Month(), date.Day(), periodStart/60, periodStart%60, 0, 0, uc.calendar.Location)
		to := time.Date(date.Year(), date.Month(), date.Day(), periodEnd/60, periodEnd%60, 0, 0, uc.calendar.Location)

		for start := from; start.Before(to); start = start.Add(step) {
			candidate, ok, err := uc.probe(ctx, resourceID, start, duration, preferred, StageSamePeriod)
			if err != nil {
				return nil, err
			}
			if ok {
				candidates = append(candidates, candidate)
			}
		}
	}

	sortCandidates(candidates)
	return candidates, nil
}

// stageFirstAvailable этап 4: первый свободный слот дня в пределах горизонта
func (uc *UseCase) stageFirstAvailable(
	ctx context.Context,
	resourceID int64,
	preferred time.Time,
	duration int,
	config *domain.ScheduleConfig,
) ([]Candidate, error) {
	step := time.Duration(config.SlotGranularityMinutes) * time.Minute

	var candidates []Candidate
	for day := 1; day <= domain.MaxSearchHorizonDays; day++ {
		date := preferred.AddDate(0, 0, day)

		opening, ok := uc.calendar.OpeningFor(date)
		if !ok {
			continue
		}
		closing, _ := uc.calendar.ClosingFor(date)

		for start := opening; !start.Add(time.Duration(duration) * time.Minute).After(closing); start = start.Add(step) {
			candidate, found, err := uc.probe(ctx, resourceID, start, duration, preferred, StageFirstAvailable)
			if err != nil {
				return nil, err
			}
			if found {
				// Один кандидат на день, самый ранний
				candidates = append(candidates, candidate)
				break
			}
		}
	}

	sortCandidates(candidates)
	return candidates, nil
}

// probe проверяет один интервал и собирает кандидата с оценкой
func (uc *UseCase) probe(
	ctx context.Context,
	resourceID int64,
	start time.Time,
	duration int,
	preferred time.Time,
	stage string,
) (Candidate, bool, error) {
	result, err := uc.checker.Check(ctx, resourceID, start, duration)
	if err != nil {
		uc.logger.Error("FindAlternatives: check failed for resource=%d at %s: %v",
			resourceID, start.Format(domain.DateFormat+" "+domain.TimeFormat), err)
		return Candidate{}, false, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
	if !result.Available {
		return Candidate{}, false, nil
	}

	return Candidate{
		StartAt: start,
		EndAt:   start.Add(time.Duration(duration) * time.Minute),
		Score:   scoreCandidate(start, preferred),
		Stage:   stage,
	}, true, nil
}

// scoreCandidate считает оценку кандидата: дни до желаемой даты весят
// намного больше минут внутри дня, меньше - лучше
func scoreCandidate(start, preferred time.Time) int {
	dayOffset := daysBetween(preferred, start)
	if dayOffset < 0 {
		dayOffset = -dayOffset
	}

	minuteOffset := clockMinutes(start) - clockMinutes(preferred)
	if minuteOffset < 0 {
		minuteOffset = -minuteOffset
	}

	return dayOffset*domain.DayOffsetScoreWeight + minuteOffset
}

// mergeCandidates добавляет кандидатов этапа к уже собранным,
// отбрасывая дубликаты и не превышая запрошенное количество
func mergeCandidates(collected, incoming []Candidate, count int) []Candidate {
	for _, candidate := range incoming {
		if len(collected) >= count {
			break
		}
		if isDuplicate(collected, candidate) {
			continue
		}
		collected = append(collected, candidate)
	}
	return collected
}

// isDuplicate возвращает true, если кандидат ближе 30 минут к уже собранному
func isDuplicate(collected []Candidate, candidate Candidate) bool {
	window := time.Duration(domain.DuplicateWindowMinutes) * time.Minute
	for _, existing := range collected {
		diff := candidate.StartAt.Sub(existing.StartAt)
		if diff < 0 {
			diff = -diff
		}
		if diff < window {
			return true
		}
	}
	return false
}

// sortCandidates сортирует кандидатов по возрастанию оценки
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})
}

// periodOfDay возвращает границы периода дня в минутах с начала суток:
// утро [06:00, 12:00), день [12:00, 17:00), вечер [17:00, 22:00)
func periodOfDay(t time.Time) (int, int) {
	minutes := clockMinutes(t)
	switch {
	case minutes < 12*60:
		return 6 * 60, 12 * 60
	case minutes < 17*60:
		return 12 * 60, 17 * 60
	default:
		return 17 * 60, 22 * 60
	}
}

// clockMinutes возвращает минуты с начала суток
func clockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// daysBetween возвращает количество календарных дней между датами
func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(toDay.Sub(fromDay) / (24 * time.Hour))
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Preferred.IsZero() {
		return fmt.Errorf("%w: preferred time is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.Count < 0 || req.Count > 20 {
		return fmt.Errorf("%w: count must be between 0 and 20", ErrInvalidInput)
	}

	return nil
}
