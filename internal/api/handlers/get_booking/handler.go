package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidIdentifier = "некорректный идентификатор бронирования"
	msgNotFound          = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{identifier}
//
// Идентификатор - внутренний ID или код подтверждения: пациент может
// проверить запись, зная только код из подтверждения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	identifier := vars["identifier"]

	booking, err := h.service.GetByIdentifier(r.Context(), identifier)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{identifier} - Booking not found: identifier=%s", identifier)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{identifier} - Invalid identifier: %s", identifier)
			handlers.RespondBadRequest(w, msgInvalidIdentifier)

		default:
			h.logger.Error("GET /bookings/{identifier} - Failed: identifier=%s, error=%v", identifier, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{identifier} - Booking retrieved: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
