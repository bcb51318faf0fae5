package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// UseCase use case для проверки доступности интервала
type UseCase struct {
	checker      AvailabilityChecker
	resolver     DateTimeResolver
	calendar     *domain.BusinessCalendar
	typeCatalog  domain.AppointmentTypeCatalog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	checker AvailabilityChecker,
	resolver DateTimeResolver,
	calendar *domain.BusinessCalendar,
	typeCatalog domain.AppointmentTypeCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		checker:      checker,
		resolver:     resolver,
		calendar:     calendar,
		typeCatalog:  typeCatalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: resource=%d, at=%v, date=%q, time=%q",
		req.ResourceID, req.At, req.DateText, req.TimeText)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().In(uc.resolver.Location())

	// 3. Определяем момент начала: явный инстант или текстовые фрагменты
	start, err := resolveStart(uc.resolver, req, now, uc.calendar)
	if err != nil {
		uc.logger.Warn("CheckAvailability: failed to resolve start: %v", err)
		return nil, err
	}

	// 4. Определяем длительность: явная -> каталог типов -> дефолт
	duration, err := resolveDuration(uc.typeCatalog, req.AppointmentType, req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CheckAvailability: failed to resolve duration: %v", err)
		return nil, err
	}

	// 5. Проверяем доступность
	result, err := uc.checker.Check(ctx, req.ResourceID, start, duration)
	if err != nil {
		uc.logger.Error("CheckAvailability: check failed for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: resource=%d, start=%s, available=%t, reason=%s",
		req.ResourceID, start.Format(domain.DateFormat+" "+domain.TimeFormat), result.Available, result.Reason)

	return buildResponse(start, duration, result), nil
}

// buildResponse конвертирует доменный результат в модель ответа
func buildResponse(start time.Time, duration int, result *domain.AvailabilityResult) *Response {
	resp := &Response{
		Available:       result.Available,
		Reason:          string(result.Reason),
		StartAt:         start,
		DurationMinutes: duration,
	}

	for _, conflict := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictingInterval{
			BookingID:       conflict.ID,
			StartAt:         conflict.StartAt,
			DurationMinutes: conflict.DurationMinutes,
		})
	}

	return resp
}
