package get_available_slots

import (
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PMS-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse доступный интервал в ответе
type SlotResponse struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	ResourceID      int64          `json:"resourceId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	IsOpen          bool           `json:"isOpen"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		ResourceID:      resp.ResourceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		IsOpen:          resp.IsOpen,
		Slots:           []SlotResponse{},
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartAt: slot.StartAt.Format(time.RFC3339),
			EndAt:   slot.EndAt.Format(time.RFC3339),
		})
	}

	return out
}
