package create_booking

import (
	"time"

	createBooking "github.com/m04kA/PMS-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID int64 `json:"resourceId"`

	SubjectID    *int64 `json:"subjectId,omitempty"`
	SubjectPhone string `json:"subjectPhone,omitempty"`
	SubjectEmail string `json:"subjectEmail,omitempty"`
	SubjectName  string `json:"subjectName,omitempty"`

	StartAt string `json:"startAt,omitempty"` // RFC 3339
	Date    string `json:"date,omitempty"`    // свободный текст ("tomorrow")
	Time    string `json:"time,omitempty"`    // свободный текст ("2pm")

	AppointmentType string  `json:"appointmentType,omitempty"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AlternativeResponse альтернативный слот в ответе при конфликте
type AlternativeResponse struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Score   int    `json:"score"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	ConfirmationCode string  `json:"confirmationCode"`
	ResourceID       int64   `json:"resourceId"`
	SubjectID        int64   `json:"subjectId"`
	SubjectName      *string `json:"subjectName,omitempty"`
	StartAt          string  `json:"startAt"`
	DurationMinutes  int     `json:"durationMinutes"`
	AppointmentType  string  `json:"appointmentType"`
	Status           string  `json:"status"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ConflictResponse ответ 409 с предложениями альтернатив
type ConflictResponse struct {
	Error        string                `json:"error"`
	Alternatives []AlternativeResponse `json:"alternatives"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req := &createBooking.Request{
		ResourceID:      r.ResourceID,
		SubjectID:       r.SubjectID,
		SubjectPhone:    r.SubjectPhone,
		SubjectEmail:    r.SubjectEmail,
		SubjectName:     r.SubjectName,
		DateText:        r.Date,
		TimeText:        r.Time,
		AppointmentType: r.AppointmentType,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}

	if r.StartAt != "" {
		parsed, err := time.Parse(time.RFC3339, r.StartAt)
		if err != nil {
			return nil, err
		}
		req.StartAt = &parsed
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		ConfirmationCode: resp.ConfirmationCode,
		ResourceID:       resp.ResourceID,
		SubjectID:        resp.SubjectID,
		SubjectName:      resp.SubjectName,
		StartAt:          resp.StartAt.Format(time.RFC3339),
		DurationMinutes:  resp.DurationMinutes,
		AppointmentType:  resp.AppointmentType,
		Status:           resp.Status,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}

// ToConflictResponse собирает тело ответа 409 из альтернатив use case
func ToConflictResponse(message string, alternatives []createBooking.Alternative) *ConflictResponse {
	out := &ConflictResponse{
		Error:        message,
		Alternatives: []AlternativeResponse{},
	}

	for _, alternative := range alternatives {
		out.Alternatives = append(out.Alternatives, AlternativeResponse{
			StartAt: alternative.StartAt.Format(time.RFC3339),
			EndAt:   alternative.EndAt.Format(time.RFC3339),
			Score:   alternative.Score,
		})
	}

	return out
}
