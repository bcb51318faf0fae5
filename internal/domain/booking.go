package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled   BookingStatus = "scheduled"
	StatusRescheduled BookingStatus = "rescheduled"
	StatusCancelled   BookingStatus = "cancelled"
	StatusCompleted   BookingStatus = "completed"
	StatusNoShow      BookingStatus = "no_show"
)

// Booking represents an appointment booking in the system
//
// StartAt - единственный канонический момент начала; дата и время суток
// всегда выводятся из него, отдельного поля "date" нет
type Booking struct {
	ID               int64
	ConfirmationCode string
	ResourceID       int64
	SubjectID        int64
	StartAt          time.Time
	DurationMinutes  int
	AppointmentType  string
	Status           BookingStatus

	// Denormalized data for history
	SubjectName *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time
	RescheduleCount    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndAt returns the end instant derived from StartAt and duration
func (b *Booking) EndAt() time.Time {
	return b.StartAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive returns true if the booking still occupies its interval
func (b *Booking) IsActive() bool {
	return b.Status == StatusScheduled || b.Status == StatusRescheduled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanBeRescheduled returns true if the booking can be moved to a new interval
func (b *Booking) CanBeRescheduled() bool {
	return b.IsActive()
}

// Overlaps возвращает true, если интервал бронирования пересекается с [start, end)
// с учетом буферной зоны bufferMinutes с обеих сторон существующего бронирования
// Граничащие интервалы (конец одного == начало другого) пересечением не считаются
func (b *Booking) Overlaps(start, end time.Time, bufferMinutes int) bool {
	buffer := time.Duration(bufferMinutes) * time.Minute
	bufferedStart := b.StartAt.Add(-buffer)
	bufferedEnd := b.EndAt().Add(buffer)
	return bufferedStart.Before(end) && bufferedEnd.After(start)
}

// ResourceBookingsFilter фильтр для получения бронирований ресурса
type ResourceBookingsFilter struct {
	ResourceID      int64          // Обязательный параметр
	From            *time.Time     // Начало периода (опционально)
	To              *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show бронирования
}
