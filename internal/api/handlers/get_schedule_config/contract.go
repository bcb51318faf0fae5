package get_schedule_config

import (
	"context"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

type ConfigService interface {
	GetByResource(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error)
	ConfigFor(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
