package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/PMS-SchedulingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат newStartAt, ожидается RFC 3339"
	msgInvalidInput       = "некорректные входные данные"
	msgNotFound           = "бронирование не найдено"
	msgNotActive          = "бронирование отменено или завершено"
	msgOutsideHours       = "новый интервал вне рабочих часов"
	msgTooSoon            = "до нового начала слишком мало времени"
	msgSlotConflict       = "новый интервал занят, предложены альтернативы"
	msgRestRequired       = "ресурсу требуется перерыв, выберите другое время"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{identifier}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	identifier := vars["identifier"]

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identifier)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Invalid newStartAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case handlers.RespondParseError(w, err):
			h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Parse error: %v", err)

		case errors.Is(err, rescheduleBooking.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Conflict: identifier=%s", identifier)
			handlers.RespondJSON(w, http.StatusConflict, ToUnavailableResponse(msgSlotConflict, result))

		case errors.Is(err, rescheduleBooking.ErrOutsideHours):
			h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Outside hours: identifier=%s", identifier)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ToUnavailableResponse(msgOutsideHours, result))

		case errors.Is(err, rescheduleBooking.ErrTooSoon):
			h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Too soon: identifier=%s", identifier)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ToUnavailableResponse(msgTooSoon, result))

		case errors.Is(err, rescheduleBooking.ErrRestRequired):
			h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Rest required: identifier=%s", identifier)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ToUnavailableResponse(msgRestRequired, result))

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Not found: identifier=%s", identifier)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrNotActive):
			h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Not active: identifier=%s", identifier)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{identifier}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{identifier}/reschedule - Failed: identifier=%s, error=%v",
				identifier, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{identifier}/reschedule - Booking moved: booking_id=%d, start=%s",
		result.ID, result.StartAt.Format("2006-01-02 15:04"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
