package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/PMS-SchedulingService/internal/usecase/check_availability"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidAt         = "некорректный параметр at, ожидается RFC 3339"
	msgInvalidDuration   = "некорректная длительность"
	msgInvalidInput      = "некорректные параметры запроса"
	msgUnknownType       = "неизвестный тип приёма"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability
//
// Момент начала: ?at= (RFC 3339) либо ?date=&time= (свободный текст)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()

	useCaseReq := &checkAvailability.Request{
		ResourceID:      resourceID,
		DateText:        query.Get("date"),
		TimeText:        query.Get("time"),
		AppointmentType: query.Get("type"),
	}

	if at := query.Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/availability - Invalid at param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAt)
			return
		}
		useCaseReq.At = &parsed
	}

	if duration := query.Get("duration"); duration != "" {
		parsed, err := strconv.Atoi(duration)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/availability - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		useCaseReq.DurationMinutes = parsed
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case handlers.RespondParseError(w, err):
			h.logger.Warn("GET /resources/{id}/availability - Parse error: %v", err)

		case errors.Is(err, checkAvailability.ErrUnknownAppointmentType):
			h.logger.Warn("GET /resources/{id}/availability - Unknown appointment type: %v", err)
			handlers.RespondBadRequest(w, msgUnknownType)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /resources/{id}/availability - Failed: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/availability - resource_id=%d, available=%t, reason=%s",
		resourceID, result.Available, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
