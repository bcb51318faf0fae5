package get_booking

import (
	"context"

	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByIdentifier(ctx context.Context, identifier string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
