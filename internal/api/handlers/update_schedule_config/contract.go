package update_schedule_config

import (
	"context"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

type ConfigService interface {
	Update(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
