package find_alternatives

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	findAlternatives "github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidPreferred  = "некорректный параметр preferred, ожидается RFC 3339"
	msgInvalidDuration   = "некорректная длительность"
	msgInvalidCount      = "некорректное количество альтернатив"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase FindAlternativesUseCase
	logger  Logger
}

func NewHandler(useCase FindAlternativesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/alternatives
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/alternatives - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()

	preferred, err := time.Parse(time.RFC3339, query.Get("preferred"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/alternatives - Invalid preferred: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPreferred)
		return
	}

	useCaseReq := &findAlternatives.Request{
		ResourceID: resourceID,
		Preferred:  preferred,
	}

	if duration := query.Get("duration"); duration != "" {
		parsed, err := strconv.Atoi(duration)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/alternatives - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		useCaseReq.DurationMinutes = parsed
	}

	if count := query.Get("count"); count != "" {
		parsed, err := strconv.Atoi(count)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/alternatives - Invalid count: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCount)
			return
		}
		useCaseReq.Count = parsed
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findAlternatives.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/alternatives - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /resources/{id}/alternatives - Failed: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/alternatives - resource_id=%d, candidates=%d",
		resourceID, len(result.Candidates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
