package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// UseCase use case для получения доступных слотов на день
type UseCase struct {
	checker        AvailabilityChecker
	configProvider ConfigProvider
	resolver       DateResolver
	calendar       *domain.BusinessCalendar
	typeCatalog    domain.AppointmentTypeCatalog
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	checker AvailabilityChecker,
	configProvider ConfigProvider,
	resolver DateResolver,
	calendar *domain.BusinessCalendar,
	typeCatalog domain.AppointmentTypeCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		checker:        checker,
		configProvider: configProvider,
		resolver:       resolver,
		calendar:       calendar,
		typeCatalog:    typeCatalog,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
//
// Шагает по рабочему дню с шагом сетки слотов и пропускает интервалы,
// не прошедшие проверку доступности. Закрытый день возвращает пустой
// список, а не ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%d, date=%v, dateText=%q",
		req.ResourceID, req.Date, req.DateText)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().In(uc.resolver.Location())

	// 3. Определяем дату: явная или текстовый фрагмент
	date, err := uc.resolveDate(req, now)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to resolve date: %v", err)
		return nil, err
	}

	// 4. Получаем конфигурацию расчёта слотов для ресурса
	config, err := uc.configProvider.ConfigFor(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get config for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 5. Валидация даты с учетом горизонта бронирования
	if err := validateDate(date, now, config.MaxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Определяем длительность: явная -> каталог типов -> дефолт
	duration, err := resolveDuration(uc.typeCatalog, req.AppointmentType, req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to resolve duration: %v", err)
		return nil, err
	}

	resp := &Response{
		ResourceID:      req.ResourceID,
		Date:            date,
		DurationMinutes: duration,
	}

	// 7. Рабочие часы на указанную дату
	opening, ok := uc.calendar.OpeningFor(date)
	if !ok {
		uc.logger.Info("GetAvailableSlots: resource=%d is closed on %s",
			req.ResourceID, date.Format(domain.DateFormat))
		return resp, nil
	}
	closing, _ := uc.calendar.ClosingFor(date)
	resp.IsOpen = true

	// 8. Шагаем по дню с шагом сетки; проверка доступности отсеивает
	// перерывы, конфликты и интервалы ближе минимального запаса
	step := time.Duration(config.SlotGranularityMinutes) * time.Minute
	for start := opening; !start.Add(time.Duration(duration) * time.Minute).After(closing); start = start.Add(step) {
		result, err := uc.checker.Check(ctx, req.ResourceID, start, duration)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: check failed for resource=%d at %s: %v",
				req.ResourceID, start.Format(domain.TimeFormat), err)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if result.Available {
			resp.Slots = append(resp.Slots, Slot{
				StartAt: start,
				EndAt:   start.Add(time.Duration(duration) * time.Minute),
			})
		}
	}

	uc.logger.Info("GetAvailableSlots: resource=%d, date=%s, found %d slots",
		req.ResourceID, date.Format(domain.DateFormat), len(resp.Slots))

	return resp, nil
}

// resolveDate определяет дату из явного значения или текста
func (uc *UseCase) resolveDate(req *Request, now time.Time) (time.Time, error) {
	if req.Date != nil {
		d := req.Date.In(uc.resolver.Location())
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, uc.resolver.Location()), nil
	}
	return uc.resolver.ParseDate(req.DateText, now)
}
