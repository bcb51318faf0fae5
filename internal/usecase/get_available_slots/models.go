package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов на день
//
// День задается либо готовой датой Date, либо текстовым фрагментом
// DateText ("tomorrow", "next friday"), который проходит через распознаватель
type Request struct {
	ResourceID      int64      // ID ресурса (врач, кабинет)
	Date            *time.Time // Явная дата (YYYY-MM-DD из API)
	DateText        string     // Фрагмент даты, используется когда Date не задана
	AppointmentType string     // Тип приёма для определения длительности (опционально)
	DurationMinutes int        // Длительность в минутах (0 = из каталога или дефолт)
}

// Slot доступный интервал для бронирования
type Slot struct {
	StartAt time.Time
	EndAt   time.Time
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ResourceID      int64
	Date            time.Time
	DurationMinutes int
	IsOpen          bool // false, если день нерабочий или праздничный
	Slots           []Slot
}
