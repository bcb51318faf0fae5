package datetime

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// dateMatcher один матчер грамматики дат
// Возвращает (дата, true) при совпадении, иначе (zero, false)
// Матчеры применяются по порядку, выигрывает первый совпавший
type dateMatcher func(text string, today time.Time) (time.Time, bool)

var (
	inDaysRe      = regexp.MustCompile(`^in (\d+) days?$`)
	nextWeekdayRe = regexp.MustCompile(`^next ([a-z]+)$`)
	numericDateRe = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})(?:[/.-](\d{2,4}))?$`)
	monthNameRe   = regexp.MustCompile(`^([a-z]+)\.? (\d{1,2})(?:st|nd|rd|th)?(?:,? (\d{4}))?$`)
	ordinalRe     = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)? (?:of )?([a-z]+)(?:,? (\d{4}))?$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"thurs":     time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// dateMatchers упорядоченная грамматика: ключевые слова, относительные
// выражения, дни недели, явные даты
var dateMatchers = []dateMatcher{
	matchTodayTomorrow,
	matchInDays,
	matchNextWeek,
	matchNextWeekday,
	matchWeekday,
	matchISODate,
	matchNumericDate,
	matchMonthNameDate,
}

// ParseDate разбирает текстовое выражение даты относительно now
// Возвращает дату с обнулённым временем в таймзоне резолвера
func (r *Resolver) ParseDate(text string, now time.Time) (time.Time, error) {
	normalized := normalizeDateText(text)
	if normalized == "" {
		return time.Time{}, newParseError(text, "date expression is empty")
	}

	today := truncateToDay(now.In(r.loc))

	for _, match := range dateMatchers {
		if date, ok := match(normalized, today); ok {
			return date, nil
		}
	}

	return time.Time{}, newParseError(text, "expected a date like \"tomorrow\", \"next tuesday\", \"march 15\" or \"2024-03-15\"")
}

func normalizeDateText(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.TrimPrefix(normalized, "on ")
	normalized = strings.TrimPrefix(normalized, "the ")
	return strings.Join(strings.Fields(normalized), " ")
}

func matchTodayTomorrow(text string, today time.Time) (time.Time, bool) {
	switch text {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "day after tomorrow":
		return today.AddDate(0, 0, 2), true
	}
	return time.Time{}, false
}

func matchInDays(text string, today time.Time) (time.Time, bool) {
	m := inDaysRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	return today.AddDate(0, 0, days), true
}

func matchNextWeek(text string, today time.Time) (time.Time, bool) {
	if text != "next week" {
		return time.Time{}, false
	}
	return today.AddDate(0, 0, 7), true
}

// matchNextWeekday "next tuesday" - следующее вхождение дня недели плюс неделя
// Явный модификатор "next" всегда добавляет 7 дней к ближайшему вхождению
func matchNextWeekday(text string, today time.Time) (time.Time, bool) {
	m := nextWeekdayRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	weekday, ok := weekdays[m[1]]
	if !ok {
		return time.Time{}, false
	}
	return nextOccurrence(today, weekday).AddDate(0, 0, 7), true
}

// matchWeekday имя дня недели - ближайшее вхождение строго после сегодня
func matchWeekday(text string, today time.Time) (time.Time, bool) {
	weekday, ok := weekdays[text]
	if !ok {
		return time.Time{}, false
	}
	return nextOccurrence(today, weekday), true
}

func matchISODate(text string, today time.Time) (time.Time, bool) {
	parsed, err := time.ParseInLocation(domain.DateFormat, text, today.Location())
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// matchNumericDate "3/15", "03-15-2025" (month/day[/year])
// Дата в прошлом без явного года переносится на следующий год
func matchNumericDate(text string, today time.Time) (time.Time, bool) {
	m := numericDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	if m[3] != "" {
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		return buildDate(year, time.Month(month), day, today)
	}

	date, ok := buildDate(today.Year(), time.Month(month), day, today)
	if !ok {
		return time.Time{}, false
	}
	if date.Before(today) {
		date, ok = buildDate(today.Year()+1, time.Month(month), day, today)
	}
	return date, ok
}

// matchMonthNameDate "march 15", "mar 15th 2025", "15 march", "15th of march"
func matchMonthNameDate(text string, today time.Time) (time.Time, bool) {
	var monthName string
	var dayStr, yearStr string

	if m := monthNameRe.FindStringSubmatch(text); m != nil {
		monthName, dayStr, yearStr = m[1], m[2], m[3]
	} else if m := ordinalRe.FindStringSubmatch(text); m != nil {
		dayStr, monthName, yearStr = m[1], m[2], m[3]
	} else {
		return time.Time{}, false
	}

	month, ok := months[monthName]
	if !ok {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(dayStr)
	if day < 1 || day > 31 {
		return time.Time{}, false
	}

	if yearStr != "" {
		year, _ := strconv.Atoi(yearStr)
		return buildDate(year, month, day, today)
	}

	date, ok := buildDate(today.Year(), month, day, today)
	if !ok {
		return time.Time{}, false
	}
	if date.Before(today) {
		date, ok = buildDate(today.Year()+1, month, day, today)
	}
	return date, ok
}

// nextOccurrence ближайшее вхождение дня недели строго после today
func nextOccurrence(today time.Time, weekday time.Weekday) time.Time {
	days := int(weekday-today.Weekday()+7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

// buildDate создает дату с проверкой реальности (31 февраля не существует)
func buildDate(year int, month time.Month, day int, ref time.Time) (time.Time, bool) {
	date := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
	if date.Month() != month || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
