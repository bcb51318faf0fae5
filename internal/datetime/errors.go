package datetime

import (
	"errors"
	"fmt"
)

var (
	// ErrParse базовая ошибка разбора даты/времени
	// Конкретная причина доступна через errors.As с *ParseError
	ErrParse = errors.New("datetime: failed to parse")

	// ErrNoOpening возвращается, когда в пределах горизонта поиска нет рабочего дня
	ErrNoOpening = errors.New("datetime: no business opening within horizon")
)

// ParseError ошибка разбора с указанием непонятого фрагмента
// Возвращается вызывающему, чтобы тот мог задать уточняющий вопрос,
// а не бронировать угаданное время
type ParseError struct {
	Fragment string // фрагмент входа, который не удалось разобрать
	Hint     string // подсказка для уточняющего вопроса
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("datetime: cannot parse %q (%s)", e.Fragment, e.Hint)
	}
	return fmt.Sprintf("datetime: cannot parse %q", e.Fragment)
}

// Is позволяет матчить ParseError через errors.Is(err, ErrParse)
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func newParseError(fragment, hint string) *ParseError {
	return &ParseError{Fragment: fragment, Hint: hint}
}
