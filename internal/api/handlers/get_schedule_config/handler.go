package get_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PMS-SchedulingService/internal/service/schedconfig"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/schedule-config
//
// Без параметров возвращает собственную запись ресурса; при её отсутствии
// или с ?effective=true - действующую конфигурацию с учётом иерархии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/schedule-config - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	effective := r.URL.Query().Get("effective") == "true"

	if !effective {
		config, err := h.service.GetByResource(r.Context(), resourceID)
		if err == nil {
			h.logger.Info("GET /resources/{id}/schedule-config - resource_id=%d, own config", resourceID)
			handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(config, false))
			return
		}
		if !errors.Is(err, schedconfig.ErrConfigNotFound) {
			h.logger.Error("GET /resources/{id}/schedule-config - Failed: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
			return
		}
		// Собственной записи нет, отдаём действующую
	}

	config, err := h.service.ConfigFor(r.Context(), resourceID)
	if err != nil {
		h.logger.Error("GET /resources/{id}/schedule-config - Failed: resource_id=%d, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources/{id}/schedule-config - resource_id=%d, effective config", resourceID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(config, true))
}
