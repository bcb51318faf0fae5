// Package datetime разбор неформальных выражений даты и времени
//
// Вход разбирается упорядоченной грамматикой матчеров: каждый матчер либо
// возвращает разобранное значение, либо "не моё", выигрывает первый совпавший.
// Неоднозначный или непонятный вход завершается ParseError с проблемным
// фрагментом - резолвер никогда не угадывает молча.
package datetime

import (
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// defaultPMThresholdHour часы 1..7 без meridiem трактуются как PM
const defaultPMThresholdHour = 8

// openingSearchHorizonDays горизонт поиска ближайшего рабочего дня
const openingSearchHorizonDays = 14

// Resolver превращает текстовые фрагменты даты/времени в конкретные моменты
type Resolver struct {
	loc                *time.Location
	granularityMinutes int
	pmThresholdHour    int
}

// NewResolver создает резолвер для указанной таймзоны и шага сетки слотов
func NewResolver(loc *time.Location, granularityMinutes int) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	return &Resolver{
		loc:                loc,
		granularityMinutes: granularityMinutes,
		pmThresholdHour:    defaultPMThresholdHour,
	}
}

// Resolve совмещает текстовые выражения даты и времени в конкретный момент
//
// Пустая дата означает "сегодня". Пустое время означает ближайшее открытие,
// выровненное по сетке слотов: для сегодняшней даты после закрытия (или в
// выходной) берется открытие следующего рабочего дня по календарю
func (r *Resolver) Resolve(dateText, timeText string, now time.Time, cal *domain.BusinessCalendar) (time.Time, error) {
	now = now.In(r.loc)

	var date time.Time
	if dateText == "" {
		date = truncateToDay(now)
	} else {
		parsed, err := r.ParseDate(dateText, now)
		if err != nil {
			return time.Time{}, err
		}
		date = parsed
	}

	if timeText == "" {
		return r.nextOpening(date, now, cal)
	}

	minutes, err := r.ParseTime(timeText)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute := minutesToClock(minutes)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, r.loc), nil
}

// nextOpening возвращает ближайший выровненный по сетке момент открытия,
// начиная с указанной даты
func (r *Resolver) nextOpening(date time.Time, now time.Time, cal *domain.BusinessCalendar) (time.Time, error) {
	for offset := 0; offset <= openingSearchHorizonDays; offset++ {
		day := date.AddDate(0, 0, offset)

		opening, open := cal.OpeningFor(day)
		if !open {
			continue
		}

		closing, _ := cal.ClosingFor(day)

		candidate := opening
		// Сегодняшний день: открытие могло уже пройти
		if now.After(candidate) {
			candidate = r.snapUp(now)
		}

		if !closing.IsZero() && !candidate.Before(closing) {
			// Рабочий день уже закончился - переходим к следующему
			continue
		}

		return candidate, nil
	}

	return time.Time{}, ErrNoOpening
}

// snapUp округляет момент вверх до ближайшего шага сетки слотов
func (r *Resolver) snapUp(t time.Time) time.Time {
	g := time.Duration(r.granularityMinutes) * time.Minute
	truncated := t.Truncate(g)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(g)
}

// Location возвращает таймзону резолвера
func (r *Resolver) Location() *time.Location {
	return r.loc
}
