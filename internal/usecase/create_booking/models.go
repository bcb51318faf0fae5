package create_booking

import "time"

// Request модель запроса на создание бронирования
//
// Момент начала задается либо готовым инстантом StartAt, либо текстовыми
// фрагментами DateText/TimeText. Пациент задается либо известным SubjectID,
// либо контактными данными для поиска или создания
type Request struct {
	ResourceID int64 // ID ресурса (врач, кабинет)

	SubjectID    *int64 // Известный ID пациента (опционально)
	SubjectPhone string // Телефон для поиска/создания пациента
	SubjectEmail string // Email для поиска/создания пациента
	SubjectName  string // Имя для создания нового пациента

	StartAt  *time.Time // Явный момент начала (ISO-8601 из API)
	DateText string     // Фрагмент даты ("tomorrow", "march 15")
	TimeText string     // Фрагмент времени ("2pm", "half past ten")

	AppointmentType string  // Тип приёма из каталога
	DurationMinutes int     // Явная длительность (0 = из каталога или дефолт)
	Notes           *string // Дополнительные заметки (опционально)
}

// Alternative альтернативный слот, предлагаемый при конфликте
type Alternative struct {
	StartAt time.Time
	EndAt   time.Time
	Score   int
}

// Response модель ответа с созданным бронированием
//
// При конфликте возвращается вместе с ErrSlotConflict: поля бронирования
// пусты, но Alternatives заполнен предложениями
type Response struct {
	ID               int64
	ConfirmationCode string
	ResourceID       int64
	SubjectID        int64
	SubjectName      *string
	StartAt          time.Time
	DurationMinutes  int
	AppointmentType  string
	Status           string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Alternatives []Alternative
}
