package domain

import (
	"time"

	"github.com/m04kA/PMS-SchedulingService/pkg/types"
)

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// BreakWindow перерыв внутри рабочего дня (например, обед 12:00-13:00)
type BreakWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// BusinessCalendar рабочий календарь: часы работы по дням недели,
// перерывы и праздничные исключения
//
// Календарь потребляется из конфигурации и ядром не изменяется
type BusinessCalendar struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule

	Breaks   []BreakWindow
	Holidays map[string]bool // даты в формате YYYY-MM-DD

	Location *time.Location
}

// ScheduleFor возвращает расписание работы на указанную дату
// Праздничные дни считаются закрытыми независимо от дня недели
func (c *BusinessCalendar) ScheduleFor(date time.Time) DaySchedule {
	if c.IsHoliday(date) {
		return DaySchedule{IsOpen: false}
	}

	switch date.Weekday() {
	case time.Monday:
		return c.Monday
	case time.Tuesday:
		return c.Tuesday
	case time.Wednesday:
		return c.Wednesday
	case time.Thursday:
		return c.Thursday
	case time.Friday:
		return c.Friday
	case time.Saturday:
		return c.Saturday
	case time.Sunday:
		return c.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// IsHoliday возвращает true, если дата является праздничным исключением
func (c *BusinessCalendar) IsHoliday(date time.Time) bool {
	if c.Holidays == nil {
		return false
	}
	return c.Holidays[date.Format(DateFormat)]
}

// WithinBusinessHours проверяет, что интервал [start, end) целиком лежит
// внутри рабочих часов своего дня и не задевает ни один перерыв
// Интервалы через полночь не поддерживаются
func (c *BusinessCalendar) WithinBusinessHours(start, end time.Time) bool {
	day := c.ScheduleFor(start)
	if !day.IsOpen || day.OpenTime.IsZero() || day.CloseTime.IsZero() {
		return false
	}

	startClock := types.NewTimeString(start.In(c.Location))
	endClock := types.NewTimeString(end.In(c.Location))

	// Интервал, переходящий через полночь, рабочим быть не может
	if endClock.IsBefore(startClock) {
		return false
	}

	if startClock.IsBefore(day.OpenTime) || endClock.IsAfter(day.CloseTime) {
		return false
	}

	for _, br := range c.Breaks {
		// Строгие неравенства: граничащий с перерывом интервал допустим
		if startClock.IsBefore(br.End) && endClock.IsAfter(br.Start) {
			return false
		}
	}

	return true
}

// OpeningFor возвращает момент открытия на указанную дату
// Возвращает false, если в этот день закрыто
func (c *BusinessCalendar) OpeningFor(date time.Time) (time.Time, bool) {
	day := c.ScheduleFor(date)
	if !day.IsOpen || day.OpenTime.IsZero() {
		return time.Time{}, false
	}

	opening, err := day.OpenTime.At(date, c.Location)
	if err != nil {
		return time.Time{}, false
	}
	return opening, true
}

// ClosingFor возвращает момент закрытия на указанную дату
// Возвращает false, если в этот день закрыто
func (c *BusinessCalendar) ClosingFor(date time.Time) (time.Time, bool) {
	day := c.ScheduleFor(date)
	if !day.IsOpen || day.CloseTime.IsZero() {
		return time.Time{}, false
	}

	closing, err := day.CloseTime.At(date, c.Location)
	if err != nil {
		return time.Time{}, false
	}
	return closing, true
}
