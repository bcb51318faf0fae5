// Package availability проверка доступности интервала для бронирования
//
// Проверки выполняются по порядку с остановкой на первой неудаче:
// рабочие часы -> минимальный запас времени -> конфликты с буфером ->
// правило отдыха. Проверка читает текущее состояние и сама по себе ничего
// не резервирует: перед записью она обязана повториться внутри
// сериализуемой транзакции
package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// Calculator вычисляет доступность интервалов ресурса
type Calculator struct {
	bookingRepo    BookingRepository
	configProvider ConfigProvider
	calendar       *domain.BusinessCalendar
	timeProvider   TimeProvider
	logger         Logger
}

// NewCalculator создает новый калькулятор доступности
func NewCalculator(
	bookingRepo BookingRepository,
	configProvider ConfigProvider,
	calendar *domain.BusinessCalendar,
	logger Logger,
) *Calculator {
	return &Calculator{
		bookingRepo:    bookingRepo,
		configProvider: configProvider,
		calendar:       calendar,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Check проверяет доступность интервала [start, start+duration) для ресурса
func (c *Calculator) Check(ctx context.Context, resourceID int64, start time.Time, durationMinutes int) (*domain.AvailabilityResult, error) {
	return c.CheckExcluding(ctx, resourceID, start, durationMinutes, 0)
}

// CheckExcluding проверяет доступность, игнорируя бронирование excludeID
// Используется при переносе: старый интервал бронирования не должен
// конфликтовать со своим же новым интервалом
func (c *Calculator) CheckExcluding(ctx context.Context, resourceID int64, start time.Time, durationMinutes int, excludeID int64) (*domain.AvailabilityResult, error) {
	config, err := c.configProvider.ConfigFor(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("availability: failed to get config for resource=%d: %w", resourceID, err)
	}

	start = start.In(c.calendar.Location)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	// 1. Интервал внутри рабочих часов и вне перерывов
	if !c.calendar.WithinBusinessHours(start, end) {
		return &domain.AvailabilityResult{Available: false, Reason: domain.ReasonOutsideHours}, nil
	}

	// 2. Минимальный запас времени до начала
	now := c.timeProvider.Now()
	minStart := now.Add(time.Duration(config.MinNoticeMinutes) * time.Minute)
	if start.Before(minStart) {
		return &domain.AvailabilityResult{Available: false, Reason: domain.ReasonTooSoon}, nil
	}

	// 3. Конфликты с активными бронированиями (с буфером с обеих сторон)
	bookings, err := c.dayBookings(ctx, resourceID, start, excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []*domain.Booking
	for _, booking := range bookings {
		if booking.Overlaps(start, end, config.BufferMinutes) {
			conflicts = append(conflicts, booking)
		}
	}
	if len(conflicts) > 0 {
		return &domain.AvailabilityResult{
			Available: false,
			Reason:    domain.ReasonConflict,
			Conflicts: conflicts,
		}, nil
	}

	// 4. Правило отдыха: нельзя создавать цепочку из MaxConsecutive
	// бронирований подряд без промежутка
	if config.MaxConsecutive > 0 && c.wouldExhaustResource(bookings, start, end, config.MaxConsecutive) {
		return &domain.AvailabilityResult{Available: false, Reason: domain.ReasonRestRequired}, nil
	}

	return &domain.AvailabilityResult{Available: true}, nil
}

// dayBookings возвращает активные бронирования ресурса за сутки вокруг start
// Запрашиваем с запасом в обе стороны, чтобы буфер и цепочки на границах
// суток учитывались корректно
func (c *Calculator) dayBookings(ctx context.Context, resourceID int64, start time.Time, excludeID int64) ([]*domain.Booking, error) {
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.calendar.Location)
	dayEnd := dayStart.Add(24 * time.Hour)

	filter := domain.ResourceBookingsFilter{
		ResourceID: resourceID,
		From:       &dayStart,
		To:         &dayEnd,
	}

	bookings, err := c.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("availability: failed to get bookings for resource=%d: %w", resourceID, err)
	}

	if excludeID == 0 {
		return bookings, nil
	}

	filtered := bookings[:0]
	for _, booking := range bookings {
		if booking.ID != excludeID {
			filtered = append(filtered, booking)
		}
	}
	return filtered, nil
}

// wouldExhaustResource возвращает true, если добавление интервала [start, end)
// создаст цепочку из maxConsecutive бронирований впритык друг к другу
//
// Смежность означает отсутствие промежутка: конец одного совпадает
// с началом следующего
func (c *Calculator) wouldExhaustResource(bookings []*domain.Booking, start, end time.Time, maxConsecutive int) bool {
	type interval struct {
		start time.Time
		end   time.Time
	}

	intervals := make([]interval, 0, len(bookings)+1)
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		intervals = append(intervals, interval{start: booking.StartAt, end: booking.EndAt()})
	}
	intervals = append(intervals, interval{start: start, end: end})

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start.Before(intervals[j].start)
	})

	// Находим длину цепочки, в которую попадает кандидат
	run := 1
	inRun := intervals[0].start.Equal(start)
	for i := 1; i < len(intervals); i++ {
		if intervals[i].start.Equal(intervals[i-1].end) {
			run++
		} else {
			if inRun && run >= maxConsecutive {
				return true
			}
			run = 1
			inRun = false
		}
		if intervals[i].start.Equal(start) {
			inRun = true
		}
	}

	return inRun && run >= maxConsecutive
}
