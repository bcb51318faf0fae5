package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// AvailabilityChecker интерфейс калькулятора доступности
type AvailabilityChecker interface {
	Check(ctx context.Context, resourceID int64, start time.Time, durationMinutes int) (*domain.AvailabilityResult, error)
}

// DateTimeResolver интерфейс распознавателя дат и времени
type DateTimeResolver interface {
	Resolve(dateText, timeText string, now time.Time, cal *domain.BusinessCalendar) (time.Time, error)
	Location() *time.Location
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
