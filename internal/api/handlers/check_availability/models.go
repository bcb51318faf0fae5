package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/PMS-SchedulingService/internal/usecase/check_availability"
)

// ConflictResponse занятый интервал в ответе
type ConflictResponse struct {
	BookingID       int64  `json:"bookingId"`
	StartAt         string `json:"startAt"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available       bool               `json:"available"`
	Reason          string             `json:"reason,omitempty"`
	StartAt         string             `json:"startAt"`
	DurationMinutes int                `json:"durationMinutes"`
	Conflicts       []ConflictResponse `json:"conflicts,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Available:       resp.Available,
		Reason:          resp.Reason,
		StartAt:         resp.StartAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
	}

	for _, conflict := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictResponse{
			BookingID:       conflict.BookingID,
			StartAt:         conflict.StartAt.Format(time.RFC3339),
			DurationMinutes: conflict.DurationMinutes,
		})
	}

	return out
}
