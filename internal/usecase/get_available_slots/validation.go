package get_available_slots

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

	if req.Date == nil && req.DateText == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	return nil
}

// validateDate проверяет, что дата подходит для просмотра слотов
func validateDate(date, now time.Time, maxAdvanceDays int) error {
	dateOnly := truncateToDay(date)
	nowOnly := truncateToDay(now)

	if dateOnly.Before(nowOnly) {
		return ErrDateInPast
	}

	// maxAdvanceDays = 0 означает отсутствие ограничения
	if maxAdvanceDays > 0 && dateOnly.After(nowOnly.AddDate(0, 0, maxAdvanceDays)) {
		return fmt.Errorf("%w: can only look %d days ahead", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
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

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
