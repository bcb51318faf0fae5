package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/PMS-SchedulingService/internal/datetime"
)

// ParseErrorResponse ответ на нераспознанный фрагмент даты или времени
type ParseErrorResponse struct {
	Error    string `json:"error"`
	Fragment string `json:"fragment"`
	Hint     string `json:"hint,omitempty"`
}

// RespondParseError пишет ответ 400 с фрагментом и подсказкой, если err
// является ошибкой разбора даты/времени. Возвращает false, если err
// другой природы и ответ не записан
func RespondParseError(w http.ResponseWriter, err error) bool {
	var parseErr *datetime.ParseError
	if !errors.As(err, &parseErr) {
		return false
	}

	RespondJSON(w, http.StatusBadRequest, ParseErrorResponse{
		Error:    "не удалось распознать дату или время",
		Fragment: parseErr.Fragment,
		Hint:     parseErr.Hint,
	})
	return true
}
