package domain

// Default scheduling values
const (
	DefaultSlotGranularityMinutes = 15
	DefaultBufferMinutes          = 5
	DefaultMinNoticeMinutes       = 30
	DefaultMaxAdvanceDays         = 90
	DefaultMaxConsecutive         = 4 // четвертое подряд бронирование без перерыва отклоняется
	DefaultDurationMinutes        = 30
)

// Slot search constants
const (
	NearbyWindowMinutes     = 60    // этап 1: тот же день, +-1 час от желаемого времени
	SameTimeHorizonDays     = 3     // этап 2: то же время в ближайшие дни
	SamePeriodHorizonDays   = 7     // этап 3: тот же период дня в ближайшие дни
	MaxSearchHorizonDays    = 14    // этап 4: первый свободный слот
	DuplicateWindowMinutes  = 30    // кандидаты ближе 30 минут считаются дубликатами
	DayOffsetScoreWeight    = 10000 // вес дня в скоринге кандидата
	DefaultAlternativeCount = 3
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих интервал
// Используется для фильтрации при проверке доступности
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
	StatusCompleted,
}

// ActiveStatuses список статусов, занимающих интервал
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusRescheduled,
}
