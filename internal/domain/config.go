package domain

import "time"

// ScheduleConfig represents scheduling tuning for a resource
// Supports hierarchical configuration:
// 1. Resource-specific (resource_id set)
// 2. Global (resource_id is NULL)
type ScheduleConfig struct {
	ID                     int64
	ResourceID             *int64 // NULL = config for all resources
	SlotGranularityMinutes int
	BufferMinutes          int
	MinNoticeMinutes       int
	MaxAdvanceDays         int // 0 = unlimited
	MaxConsecutive         int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsGlobal returns true if this is a global configuration
func (c *ScheduleConfig) IsGlobal() bool {
	return c.ResourceID == nil
}

// HasAdvanceLimit returns true if there's a limit on how far ahead bookings can be made
func (c *ScheduleConfig) HasAdvanceLimit() bool {
	return c.MaxAdvanceDays > 0
}

// DefaultScheduleConfig возвращает конфигурацию с дефолтными значениями
// Используется, когда для ресурса нет ни специфичной, ни глобальной записи
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		BufferMinutes:          DefaultBufferMinutes,
		MinNoticeMinutes:       DefaultMinNoticeMinutes,
		MaxAdvanceDays:         DefaultMaxAdvanceDays,
		MaxConsecutive:         DefaultMaxConsecutive,
	}
}
