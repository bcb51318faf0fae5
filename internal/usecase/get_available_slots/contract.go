package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// AvailabilityChecker интерфейс калькулятора доступности
type AvailabilityChecker interface {
	Check(ctx context.Context, resourceID int64, start time.Time, durationMinutes int) (*domain.AvailabilityResult, error)
}

// ConfigProvider отдает настройки расчёта слотов для ресурса
type ConfigProvider interface {
	ConfigFor(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error)
}

// DateResolver интерфейс распознавателя дат
type DateResolver interface {
	ParseDate(text string, now time.Time) (time.Time, error)
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
