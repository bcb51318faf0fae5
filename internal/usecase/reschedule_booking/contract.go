package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	"github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByConfirmationCode(ctx context.Context, code string) (*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, newStart time.Time) error
}

// AvailabilityChecker интерфейс калькулятора доступности
// CheckExcluding игнорирует собственный интервал переносимого бронирования
type AvailabilityChecker interface {
	CheckExcluding(ctx context.Context, resourceID int64, start time.Time, durationMinutes int, excludeID int64) (*domain.AvailabilityResult, error)
}

// AlternativesFinder интерфейс поиска альтернативных слотов
type AlternativesFinder interface {
	Execute(ctx context.Context, req *find_alternatives.Request) (*find_alternatives.Response, error)
}

// DateTimeResolver интерфейс распознавателя дат и времени
type DateTimeResolver interface {
	Resolve(dateText, timeText string, now time.Time, cal *domain.BusinessCalendar) (time.Time, error)
	Location() *time.Location
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
