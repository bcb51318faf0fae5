package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/PMS-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartAt      = "некорректный формат startAt, ожидается RFC 3339"
	msgInvalidInput        = "некорректные входные данные"
	msgUnknownType         = "неизвестный тип приёма"
	msgSubjectNotFound     = "пациент не найден"
	msgIdentityUnavailable = "сервис идентификации недоступен, повторите попытку позже"
	msgOutsideHours        = "интервал вне рабочих часов"
	msgTooSoon             = "до начала приёма слишком мало времени"
	msgSlotConflict        = "интервал занят, предложены альтернативы"
	msgRestRequired        = "ресурсу требуется перерыв, выберите другое время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case handlers.RespondParseError(w, err):
			h.logger.Warn("POST /bookings - Parse error: %v", err)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: resource_id=%d", req.ResourceID)
			handlers.RespondJSON(w, http.StatusConflict, ToConflictResponse(msgSlotConflict, result.Alternatives))

		case errors.Is(err, createBooking.ErrOutsideHours):
			h.logger.Warn("POST /bookings - Outside business hours: resource_id=%d", req.ResourceID)
			handlers.RespondUnprocessable(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrTooSoon):
			h.logger.Warn("POST /bookings - Too soon: resource_id=%d", req.ResourceID)
			handlers.RespondUnprocessable(w, msgTooSoon)

		case errors.Is(err, createBooking.ErrRestRequired):
			h.logger.Warn("POST /bookings - Rest required: resource_id=%d", req.ResourceID)
			handlers.RespondUnprocessable(w, msgRestRequired)

		case errors.Is(err, createBooking.ErrSubjectNotFound):
			h.logger.Warn("POST /bookings - Subject not found: subject_id=%v", req.SubjectID)
			handlers.RespondNotFound(w, msgSubjectNotFound)

		case errors.Is(err, createBooking.ErrIdentityUnavailable):
			h.logger.Error("POST /bookings - Identity service unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgIdentityUnavailable)

		case errors.Is(err, createBooking.ErrUnknownAppointmentType):
			h.logger.Warn("POST /bookings - Unknown appointment type: %q", req.AppointmentType)
			handlers.RespondBadRequest(w, msgUnknownType)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: resource_id=%d, error=%v",
				req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, code=%s, resource_id=%d",
		result.ID, result.ConfirmationCode, result.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
