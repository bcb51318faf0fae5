package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrUnknownAppointmentType возвращается, когда тип приёма не найден в каталоге
	ErrUnknownAppointmentType = errors.New("create_booking: unknown appointment type")

	// ErrSubjectNotFound возвращается, когда пациент с указанным ID не найден
	ErrSubjectNotFound = errors.New("create_booking: subject not found")

	// ErrIdentityUnavailable возвращается, когда сервис идентификации недоступен
	ErrIdentityUnavailable = errors.New("create_booking: identity service unavailable")

	// ErrOutsideHours возвращается, когда интервал вне рабочих часов
	ErrOutsideHours = errors.New("create_booking: interval is outside business hours")

	// ErrTooSoon возвращается, когда до начала меньше минимального запаса времени
	ErrTooSoon = errors.New("create_booking: interval starts too soon")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным бронированием
	ErrSlotConflict = errors.New("create_booking: interval conflicts with an existing booking")

	// ErrRestRequired возвращается, когда бронирование нарушает правило отдыха
	ErrRestRequired = errors.New("create_booking: rest period is required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
