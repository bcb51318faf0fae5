package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.At == nil && req.DateText == "" && req.TimeText == "" {
		return fmt.Errorf("%w: either an explicit instant or date/time text is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	return nil
}

// resolveStart определяет момент начала из явного инстанта или текста
// Ошибки разбора текста пробрасываются как есть, чтобы транспортный слой
// мог вернуть фрагмент и подсказку
func resolveStart(resolver DateTimeResolver, req *Request, now time.Time, cal *domain.BusinessCalendar) (time.Time, error) {
	if req.At != nil {
		return req.At.In(resolver.Location()), nil
	}
	return resolver.Resolve(req.DateText, req.TimeText, now, cal)
}

// resolveDuration определяет длительность приёма
// Приоритет: явное значение -> каталог типов -> дефолт
func resolveDuration(catalog domain.AppointmentTypeCatalog, appointmentType string, explicit int) (int, error) {
	if explicit != 0 {
		return explicit, nil
	}

	if appointmentType != "" {
		duration, ok := catalog.DurationFor(appointmentType)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownAppointmentType, appointmentType)
		}
		return duration, nil
	}

	return domain.DefaultDurationMinutes, nil
}
