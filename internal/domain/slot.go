package domain

import "time"

// TimeSlot временной интервал [Start, End)
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot length
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// SlotCandidate кандидат при поиске альтернативных слотов
// Существует только на время поиска и не сохраняется
type SlotCandidate struct {
	Start  time.Time
	End    time.Time
	Score  int    // dayOffset * DayOffsetScoreWeight + |minuteOffset|
	Reason string // этап поиска, на котором найден кандидат
}

// UnavailabilityReason причина недоступности интервала
type UnavailabilityReason string

const (
	ReasonOutsideHours UnavailabilityReason = "OUTSIDE_HOURS"
	ReasonTooSoon      UnavailabilityReason = "TOO_SOON"
	ReasonConflict     UnavailabilityReason = "CONFLICT"
	ReasonRestRequired UnavailabilityReason = "REST_REQUIRED"
)

// AvailabilityResult результат проверки доступности интервала
type AvailabilityResult struct {
	Available bool
	Reason    UnavailabilityReason // пустая строка, если доступен
	Conflicts []*Booking           // заполняется при Reason == CONFLICT
}
