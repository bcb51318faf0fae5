package check_availability

import "time"

// Request модель запроса на проверку доступности интервала
//
// Момент начала задается либо готовым инстантом At, либо текстовыми
// фрагментами DateText/TimeText, которые проходят через распознаватель
type Request struct {
	ResourceID      int64      // ID ресурса (врач, кабинет)
	At              *time.Time // Явный момент начала (ISO-8601 из API)
	DateText        string     // Фрагмент даты ("tomorrow", "march 15")
	TimeText        string     // Фрагмент времени ("2pm", "half past ten")
	AppointmentType string     // Тип приёма для определения длительности (опционально)
	DurationMinutes int        // Длительность в минутах (0 = из каталога или дефолт)
}

// ConflictingInterval занятый интервал, помешавший бронированию
type ConflictingInterval struct {
	BookingID       int64
	StartAt         time.Time
	DurationMinutes int
}

// Response модель ответа с результатом проверки доступности
type Response struct {
	Available       bool
	Reason          string // причина недоступности, пустая строка если доступен
	StartAt         time.Time
	DurationMinutes int
	Conflicts       []ConflictingInterval // заполняется при Reason == CONFLICT
}
