package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayCalendar() *BusinessCalendar {
	workday := DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"}
	return &BusinessCalendar{
		Monday:    workday,
		Tuesday:   workday,
		Wednesday: workday,
		Thursday:  workday,
		Friday:    workday,
		Breaks: []BreakWindow{
			{Start: "12:00", End: "13:00"},
		},
		Holidays: map[string]bool{"2024-03-18": true},
		Location: time.UTC,
	}
}

func TestBusinessCalendar_ScheduleFor(t *testing.T) {
	cal := weekdayCalendar()

	friday := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, cal.ScheduleFor(friday).IsOpen)

	saturday := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)
	assert.False(t, cal.ScheduleFor(saturday).IsOpen)

	// Праздничный понедельник закрыт независимо от дня недели
	holiday := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC)
	assert.False(t, cal.ScheduleFor(holiday).IsOpen)
	assert.True(t, cal.IsHoliday(holiday))
}

func TestBusinessCalendar_WithinBusinessHours(t *testing.T) {
	cal := weekdayCalendar()

	at := func(day, hour, minute int) time.Time {
		return time.Date(2024, time.March, day, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"inside working hours", at(15, 10, 0), at(15, 10, 30), true},
		{"starts at opening", at(15, 9, 0), at(15, 9, 30), true},
		{"ends at closing", at(15, 16, 30), at(15, 17, 0), true},
		{"before opening", at(15, 8, 30), at(15, 9, 0), false},
		{"after closing", at(15, 17, 0), at(15, 17, 30), false},
		{"crosses closing", at(15, 16, 45), at(15, 17, 15), false},
		{"inside break", at(15, 12, 15), at(15, 12, 45), false},
		{"crosses break start", at(15, 11, 45), at(15, 12, 15), false},
		{"crosses break end", at(15, 12, 45), at(15, 13, 15), false},
		{"ends exactly at break start", at(15, 11, 30), at(15, 12, 0), true},
		{"starts exactly at break end", at(15, 13, 0), at(15, 13, 30), true},
		{"weekend", at(16, 10, 0), at(16, 10, 30), false},
		{"holiday", at(18, 10, 0), at(18, 10, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.WithinBusinessHours(tt.start, tt.end))
		})
	}
}

func TestBusinessCalendar_OpeningClosing(t *testing.T) {
	cal := weekdayCalendar()

	friday := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	opening, ok := cal.OpeningFor(friday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC), opening)

	closing, ok := cal.ClosingFor(friday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 15, 17, 0, 0, 0, time.UTC), closing)

	saturday := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)
	_, ok = cal.OpeningFor(saturday)
	assert.False(t, ok)
	_, ok = cal.ClosingFor(saturday)
	assert.False(t, ok)
}
