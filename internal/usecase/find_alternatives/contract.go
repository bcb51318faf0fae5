package find_alternatives

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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
