package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidIdentifier  = "некорректный идентификатор бронирования"
	msgInvalidStatus      = "недопустимый статус"
	msgNotFound           = "бронирование не найдено"
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

// Handle PATCH /api/v1/bookings/{identifier}/status
//
// Отметка исхода приёма: completed или no_show. Отмена идёт через
// отдельный endpoint с причиной
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	identifier := vars["identifier"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{identifier}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), identifier, &req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{identifier}/status - Not found: identifier=%s", identifier)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{identifier}/status - Invalid status: identifier=%s, status=%s",
				identifier, req.Status)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{identifier}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIdentifier)

		default:
			h.logger.Error("PATCH /bookings/{identifier}/status - Failed: identifier=%s, error=%v", identifier, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{identifier}/status - Status updated: identifier=%s, status=%s",
		identifier, req.Status)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
