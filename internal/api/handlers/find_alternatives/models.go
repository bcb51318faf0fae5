package find_alternatives

import (
	"time"

	findAlternatives "github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
)

// CandidateResponse альтернативный слот в ответе
type CandidateResponse struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Score   int    `json:"score"`
	Stage   string `json:"stage"`
}

// AlternativesResponse HTTP response model
//
// Пустой список кандидатов - нормальный ответ "нет доступности"
type AlternativesResponse struct {
	ResourceID      int64               `json:"resourceId"`
	Preferred       string              `json:"preferred"`
	DurationMinutes int                 `json:"durationMinutes"`
	Candidates      []CandidateResponse `json:"candidates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findAlternatives.Response) *AlternativesResponse {
	out := &AlternativesResponse{
		ResourceID:      resp.ResourceID,
		Preferred:       resp.Preferred.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Candidates:      []CandidateResponse{},
	}

	for _, candidate := range resp.Candidates {
		out.Candidates = append(out.Candidates, CandidateResponse{
			StartAt: candidate.StartAt.Format(time.RFC3339),
			EndAt:   candidate.EndAt.Format(time.RFC3339),
			Score:   candidate.Score,
			Stage:   candidate.Stage,
		})
	}

	return out
}
