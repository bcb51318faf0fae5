package find_alternatives

import "time"

// Request модель запроса на поиск альтернативных слотов
type Request struct {
	ResourceID      int64
	Preferred       time.Time // Желаемый момент начала
	DurationMinutes int       // Длительность в минутах (0 = дефолт)
	Count           int       // Сколько кандидатов вернуть (0 = дефолт)
}

// Candidate альтернативный слот с оценкой близости к желаемому времени
type Candidate struct {
	StartAt         time.Time
	EndAt           time.Time
	Score           int    // дни * вес + минуты от желаемого времени, меньше - лучше
	Stage           string // этап поиска, на котором найден кандидат
}

// Response модель ответа со списком альтернатив
//
// Пустой список при исчерпанном горизонте - нормальный результат
// "нет доступности", а не ошибка
type Response struct {
	ResourceID      int64
	Preferred       time.Time
	DurationMinutes int
	Candidates      []Candidate
}
