package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrNotActive возвращается, когда бронирование отменено или завершено
	ErrNotActive = errors.New("reschedule_booking: booking is not active")

	// ErrOutsideHours возвращается, когда новый интервал вне рабочих часов
	ErrOutsideHours = errors.New("reschedule_booking: interval is outside business hours")

	// ErrTooSoon возвращается, когда до нового начала меньше минимального запаса
	ErrTooSoon = errors.New("reschedule_booking: interval starts too soon")

	// ErrSlotConflict возвращается, когда новый интервал пересекается с активным бронированием
	ErrSlotConflict = errors.New("reschedule_booking: interval conflicts with an existing booking")

	// ErrRestRequired возвращается, когда перенос нарушает правило отдыха
	ErrRestRequired = errors.New("reschedule_booking: rest period is required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
