package get_resource_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/PMS-SchedulingService/pkg/ptr"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтра"
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

// Handle GET /api/v1/resources/{resourceId}/bookings
//
// Фильтры: ?from=&to= (YYYY-MM-DD), ?status=, ?includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/bookings - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()

	req := &models.GetResourceBookingsRequest{
		ResourceID:      resourceID,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if from := query.Get("from"); from != "" {
		parsed, err := time.Parse(domain.DateFormat, from)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/bookings - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.From = &parsed
	}

	if to := query.Get("to"); to != "" {
		parsed, err := time.Parse(domain.DateFormat, to)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/bookings - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// Верхняя граница не включается, берём следующий день
		req.To = ptr.Ptr(parsed.AddDate(0, 0, 1))
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetResourceBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/bookings - Invalid filter: resource_id=%d", resourceID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /resources/{id}/bookings - Failed: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/bookings - resource_id=%d, bookings=%d", resourceID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
