package find_alternatives

import (
	"context"

	findAlternatives "github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
)

type FindAlternativesUseCase interface {
	Execute(ctx context.Context, req *findAlternatives.Request) (*findAlternatives.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
