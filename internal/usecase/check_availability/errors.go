package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrUnknownAppointmentType возвращается, когда тип приёма не найден в каталоге
	ErrUnknownAppointmentType = errors.New("check_availability: unknown appointment type")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
