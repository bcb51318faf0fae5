package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PMS-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidDuration   = "некорректная длительность"
	msgInvalidInput      = "некорректные параметры запроса"
	msgUnknownType       = "неизвестный тип приёма"
	msgDateInPast        = "дата уже прошла"
	msgDateTooFar        = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/slots
//
// День: ?date= (YYYY-MM-DD либо свободный текст вроде "tomorrow")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()

	useCaseReq := &getAvailableSlots.Request{
		ResourceID:      resourceID,
		AppointmentType: query.Get("type"),
	}

	// Явная дата YYYY-MM-DD, иначе текст уходит в распознаватель
	if date := query.Get("date"); date != "" {
		if parsed, err := time.Parse(domain.DateFormat, date); err == nil {
			useCaseReq.Date = &parsed
		} else {
			useCaseReq.DateText = date
		}
	}

	if duration := query.Get("duration"); duration != "" {
		parsed, err := strconv.Atoi(duration)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		useCaseReq.DurationMinutes = parsed
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case handlers.RespondParseError(w, err):
			h.logger.Warn("GET /resources/{id}/slots - Parse error: %v", err)

		case errors.Is(err, getAvailableSlots.ErrUnknownAppointmentType):
			h.logger.Warn("GET /resources/{id}/slots - Unknown appointment type: %v", err)
			handlers.RespondBadRequest(w, msgUnknownType)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /resources/{id}/slots - Date in past: resource_id=%d", resourceID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /resources/{id}/slots - Date too far: resource_id=%d", resourceID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /resources/{id}/slots - Failed: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/slots - resource_id=%d, date=%s, slots=%d",
		resourceID, result.Date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
