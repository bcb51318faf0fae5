package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// ни по внутреннему ID, ни по коду подтверждения
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	// Поля отмены при этом не изменяются
	ErrAlreadyCancelled = errors.New("bookings: booking is already cancelled")

	// ErrCannotCancel возвращается, когда бронирование в финальном статусе
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("bookings: invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
