package datetime

import (
	"regexp"
	"strconv"
	"strings"
)

// timeMatcher один матчер грамматики времени
// Возвращает (минуты с начала суток, true) при совпадении
type timeMatcher func(r *Resolver, text string) (int, bool)

var (
	clockRe       = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?$`)
	halfPastRe    = regexp.MustCompile(`^half past (\d{1,2})\s*(am|pm)?$`)
	quarterPastRe = regexp.MustCompile(`^(?:a )?quarter past (\d{1,2})\s*(am|pm)?$`)
	quarterToRe   = regexp.MustCompile(`^(?:a )?quarter to (\d{1,2})\s*(am|pm)?$`)
)

// namedTimes именованные моменты и периоды дня
var namedTimes = map[string]int{
	"morning":   9 * 60,
	"afternoon": 14 * 60,
	"evening":   16 * 60,
	"noon":      12 * 60,
	"midday":    12 * 60,
	"midnight":  0,
}

var timeMatchers = []timeMatcher{
	matchNamedTime,
	matchHalfPast,
	matchQuarterPast,
	matchQuarterTo,
	matchClock,
}

// ParseTime разбирает текстовое выражение времени суток
// Возвращает минуты с начала суток, округленные к ближайшему шагу сетки слотов
func (r *Resolver) ParseTime(text string) (int, error) {
	normalized := normalizeTimeText(text)
	if normalized == "" {
		return 0, newParseError(text, "time expression is empty")
	}

	for _, match := range timeMatchers {
		if minutes, ok := match(r, normalized); ok {
			return r.snapToGranularity(minutes), nil
		}
	}

	return 0, newParseError(text, "expected a time like \"2pm\", \"14:30\", \"half past 3\" or \"morning\"")
}

func normalizeTimeText(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.TrimPrefix(normalized, "at ")
	normalized = strings.TrimPrefix(normalized, "in the ")
	normalized = strings.TrimSuffix(normalized, " o'clock")
	normalized = strings.TrimSuffix(normalized, " oclock")
	return strings.Join(strings.Fields(normalized), " ")
}

func matchNamedTime(_ *Resolver, text string) (int, bool) {
	minutes, ok := namedTimes[text]
	return minutes, ok
}

func matchHalfPast(r *Resolver, text string) (int, bool) {
	m := halfPastRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	hour, ok := resolveHour(r, m[1], m[2])
	if !ok {
		return 0, false
	}
	return hour*60 + 30, true
}

func matchQuarterPast(r *Resolver, text string) (int, bool) {
	m := quarterPastRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	hour, ok := resolveHour(r, m[1], m[2])
	if !ok {
		return 0, false
	}
	return hour*60 + 15, true
}

func matchQuarterTo(r *Resolver, text string) (int, bool) {
	m := quarterToRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	hour, ok := resolveHour(r, m[1], m[2])
	if !ok {
		return 0, false
	}
	// "quarter to 3" = 2:45
	return (hour*60 - 15 + 24*60) % (24 * 60), true
}

// matchClock "14:30", "2pm", "2:30 pm", "9.15"
func matchClock(r *Resolver, text string) (int, bool) {
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return 0, false
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return 0, false
		}
	}

	meridiem := strings.ReplaceAll(m[3], ".", "")
	switch meridiem {
	case "am":
		if hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		hour = r.inferHour(hour)
	}

	return hour*60 + minute, true
}

// resolveHour применяет meridiem либо эвристику к часу из словесных форм
func resolveHour(r *Resolver, hourStr, meridiem string) (int, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 23 {
		return 0, false
	}

	switch meridiem {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	default:
		hour = r.inferHour(hour)
	}
	return hour, true
}

// inferHour эвристика AM/PM: малые значения часа без meridiem трактуются как PM
// ("встреча в 2" почти наверняка значит 14:00, а не 2 ночи)
func (r *Resolver) inferHour(hour int) int {
	if hour >= 1 && hour < r.pmThresholdHour {
		return hour + 12
	}
	return hour
}

// snapToGranularity округляет минуты к ближайшему шагу сетки слотов
func (r *Resolver) snapToGranularity(minutes int) int {
	g := r.granularityMinutes
	if g <= 1 {
		return minutes
	}
	snapped := (minutes + g/2) / g * g
	if snapped >= 24*60 {
		snapped = 24*60 - g
	}
	return snapped
}

// minutesToClock переводит минуты с начала суток в час и минуту
func minutesToClock(minutes int) (int, int) {
	return minutes / 60, minutes % 60
}
