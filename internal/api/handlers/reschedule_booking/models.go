package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/m04kA/PMS-SchedulingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewStartAt string `json:"newStartAt,omitempty"` // RFC 3339
	Date       string `json:"date,omitempty"`       // свободный текст ("tomorrow")
	Time       string `json:"time,omitempty"`       // свободный текст ("2pm")
}

// AlternativeResponse альтернативный слот в ответе при недоступности
type AlternativeResponse struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Score   int    `json:"score"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64  `json:"id"`
	ConfirmationCode string `json:"confirmationCode"`
	ResourceID       int64  `json:"resourceId"`
	SubjectID        int64  `json:"subjectId"`
	StartAt          string `json:"startAt"`
	DurationMinutes  int    `json:"durationMinutes"`
	AppointmentType  string `json:"appointmentType"`
	Status           string `json:"status"`
	RescheduleCount  int    `json:"rescheduleCount"`
}

// UnavailableResponse ответ при недоступности нового интервала
// Бронирование не изменено, предложены альтернативы
type UnavailableResponse struct {
	Error        string                `json:"error"`
	Booking      *BookingResponse      `json:"booking"`
	Alternatives []AlternativeResponse `json:"alternatives"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(identifier string) (*rescheduleBooking.Request, error) {
	req := &rescheduleBooking.Request{
		Identifier: identifier,
		DateText:   r.Date,
		TimeText:   r.Time,
	}

	if r.NewStartAt != "" {
		parsed, err := time.Parse(time.RFC3339, r.NewStartAt)
		if err != nil {
			return nil, err
		}
		req.NewStartAt = &parsed
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		ConfirmationCode: resp.ConfirmationCode,
		ResourceID:       resp.ResourceID,
		SubjectID:        resp.SubjectID,
		StartAt:          resp.StartAt.Format(time.RFC3339),
		DurationMinutes:  resp.DurationMinutes,
		AppointmentType:  resp.AppointmentType,
		Status:           resp.Status,
		RescheduleCount:  resp.RescheduleCount,
	}
}

// ToUnavailableResponse собирает тело ответа при недоступности интервала
func ToUnavailableResponse(message string, resp *rescheduleBooking.Response) *UnavailableResponse {
	out := &UnavailableResponse{
		Error:        message,
		Booking:      FromUseCaseResponse(resp),
		Alternatives: []AlternativeResponse{},
	}

	for _, alternative := range resp.Alternatives {
		out.Alternatives = append(out.Alternatives, AlternativeResponse{
			StartAt: alternative.StartAt.Format(time.RFC3339),
			EndAt:   alternative.EndAt.Format(time.RFC3339),
			Score:   alternative.Score,
		})
	}

	return out
}
