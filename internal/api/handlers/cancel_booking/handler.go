package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidIdentifier  = "некорректный идентификатор бронирования"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyCancelled   = "бронирование уже отменено"
	msgCannotCancel       = "бронирование нельзя отменить в текущем статусе"
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

// Handle PATCH /api/v1/bookings/{identifier}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	identifier := vars["identifier"]

	// Тело с причиной опционально
	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{identifier}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), identifier, &req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{identifier}/cancel - Not found: identifier=%s", identifier)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /bookings/{identifier}/cancel - Already cancelled: identifier=%s", identifier)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{identifier}/cancel - Cannot cancel: identifier=%s", identifier)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{identifier}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIdentifier)

		default:
			h.logger.Error("PATCH /bookings/{identifier}/cancel - Failed: identifier=%s, error=%v", identifier, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{identifier}/cancel - Booking cancelled: identifier=%s", identifier)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
