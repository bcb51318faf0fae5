package schedconfig

import (
	"context"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// ConfigRepository интерфейс репозитория настроек расчёта слотов
type ConfigRepository interface {
	GetWithHierarchy(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error)
	GetByResource(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	Delete(ctx context.Context, resourceID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
