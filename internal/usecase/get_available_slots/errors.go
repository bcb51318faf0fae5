package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrUnknownAppointmentType возвращается, когда тип приёма не найден в каталоге
	ErrUnknownAppointmentType = errors.New("get_available_slots: unknown appointment type")

	// ErrDateInPast возвращается, когда запрошен уже прошедший день
	ErrDateInPast = errors.New("get_available_slots: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
