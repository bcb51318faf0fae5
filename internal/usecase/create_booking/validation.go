package create_booking

import (
	"fmt"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.SubjectID == nil && req.SubjectPhone == "" && req.SubjectEmail == "" {
		return fmt.Errorf("%w: subject id, phone or email is required", ErrInvalidInput)
	}

	if req.SubjectID != nil && *req.SubjectID <= 0 {
		return fmt.Errorf("%w: subjectID must be positive", ErrInvalidInput)
	}

	if req.StartAt == nil && req.DateText == "" && req.TimeText == "" {
		return fmt.Errorf("%w: either an explicit start or date/time text is required", ErrInvalidInput)
	}

	if req.AppointmentType == "" && req.DurationMinutes == 0 {
		return fmt.Errorf("%w: appointment type or duration is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
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
