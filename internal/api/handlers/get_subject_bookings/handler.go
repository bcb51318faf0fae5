package get_subject_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings"
	"github.com/m04kA/PMS-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidSubjectID = "некорректный ID пациента"
	msgInvalidStatus    = "некорректный статус бронирования"
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

// Handle GET /api/v1/subjects/{subjectId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subjectID, err := strconv.ParseInt(vars["subjectId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /subjects/{id}/bookings - Invalid subject ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubjectID)
		return
	}

	req := &models.GetSubjectBookingsRequest{SubjectID: subjectID}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetSubjectBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /subjects/{id}/bookings - Invalid status: subject_id=%d", subjectID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /subjects/{id}/bookings - Failed: subject_id=%d, error=%v", subjectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /subjects/{id}/bookings - subject_id=%d, bookings=%d", subjectID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
