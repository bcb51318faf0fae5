package reschedule_booking

import "time"

// Request модель запроса на перенос бронирования
//
// Новый момент начала задается либо готовым инстантом NewStartAt,
// либо текстовыми фрагментами DateText/TimeText
type Request struct {
	Identifier string // Внутренний ID или код подтверждения

	NewStartAt *time.Time // Явный новый момент начала (ISO-8601 из API)
	DateText   string     // Фрагмент даты ("tomorrow", "march 15")
	TimeText   string     // Фрагмент времени ("2pm", "half past ten")
}

// Alternative альтернативный слот, предлагаемый при конфликте
type Alternative struct {
	StartAt time.Time
	EndAt   time.Time
	Score   int
}

// Response модель ответа с перенесённым бронированием
//
// При недоступности нового интервала возвращается вместе с ошибкой:
// бронирование остаётся нетронутым, Alternatives заполнен предложениями
type Response struct {
	ID               int64
	ConfirmationCode string
	ResourceID       int64
	SubjectID        int64
	StartAt          time.Time
	DurationMinutes  int
	AppointmentType  string
	Status           string
	RescheduleCount  int

	Alternatives []Alternative
}
