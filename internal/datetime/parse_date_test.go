package datetime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// now фиксируется на четверг 14 марта 2024, 10:00 UTC
func fixedNow() time.Time {
	return time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	r := NewResolver(time.UTC, 15)
	now := fixedNow()

	day := func(year int, month time.Month, d int) time.Time {
		return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"today", "today", day(2024, time.March, 14)},
		{"tomorrow", "tomorrow", day(2024, time.March, 15)},
		{"day after tomorrow", "day after tomorrow", day(2024, time.March, 16)},
		{"in days", "in 3 days", day(2024, time.March, 17)},
		{"in one day", "in 1 day", day(2024, time.March, 15)},
		{"next week", "next week", day(2024, time.March, 21)},
		{"nearest friday", "friday", day(2024, time.March, 15)},
		{"weekday abbreviation", "fri", day(2024, time.March, 15)},
		{"same weekday goes to next week", "thursday", day(2024, time.March, 21)},
		{"next tuesday skips nearest", "next tuesday", day(2024, time.March, 26)},
		{"iso date", "2024-03-15", day(2024, time.March, 15)},
		{"numeric month day", "3/15", day(2024, time.March, 15)},
		{"numeric past rolls to next year", "3/1", day(2025, time.March, 1)},
		{"numeric with year", "03-15-2025", day(2025, time.March, 15)},
		{"numeric with short year", "3/15/25", day(2025, time.March, 15)},
		{"month name", "march 15", day(2024, time.March, 15)},
		{"month name with ordinal", "march 15th", day(2024, time.March, 15)},
		{"month name with year", "march 15 2025", day(2025, time.March, 15)},
		{"day before month", "15 march", day(2024, time.March, 15)},
		{"ordinal of month", "15th of march", day(2024, time.March, 15)},
		{"month name past rolls to next year", "january 5", day(2025, time.January, 5)},
		{"prefix on is stripped", "on friday", day(2024, time.March, 15)},
		{"case and spaces ignored", "  Next   Tuesday ", day(2024, time.March, 26)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ParseDate(tt.text, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_Errors(t *testing.T) {
	r := NewResolver(time.UTC, 15)
	now := fixedNow()

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"garbage", "whenever you can"},
		{"nonexistent day", "february 30"},
		{"month out of range", "13/45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ParseDate(tt.text, now)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse))

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.NotEmpty(t, parseErr.Hint)
		})
	}
}

func TestParseDate_FragmentCarriesOriginalText(t *testing.T) {
	r := NewResolver(time.UTC, 15)

	_, err := r.ParseDate("sometime soonish", fixedNow())
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "sometime soonish", parseErr.Fragment)
}
