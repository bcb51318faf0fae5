package update_schedule_config

import (
	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// UpdateConfigRequest HTTP request model
type UpdateConfigRequest struct {
	SlotGranularityMinutes int `json:"slotGranularityMinutes"`
	BufferMinutes          int `json:"bufferMinutes"`
	MinNoticeMinutes       int `json:"minNoticeMinutes"`
	MaxAdvanceDays         int `json:"maxAdvanceDays"`
	MaxConsecutive         int `json:"maxConsecutive"`
}

// ConfigResponse HTTP response model
type ConfigResponse struct {
	ResourceID             *int64 `json:"resourceId,omitempty"`
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	BufferMinutes          int    `json:"bufferMinutes"`
	MinNoticeMinutes       int    `json:"minNoticeMinutes"`
	MaxAdvanceDays         int    `json:"maxAdvanceDays"`
	MaxConsecutive         int    `json:"maxConsecutive"`
}

// ToDomainConfig конвертирует HTTP запрос в доменную конфигурацию
func (r *UpdateConfigRequest) ToDomainConfig(resourceID int64) *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ResourceID:             &resourceID,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		BufferMinutes:          r.BufferMinutes,
		MinNoticeMinutes:       r.MinNoticeMinutes,
		MaxAdvanceDays:         r.MaxAdvanceDays,
		MaxConsecutive:         r.MaxConsecutive,
	}
}

// FromDomainConfig конвертирует доменную конфигурацию в HTTP response
func FromDomainConfig(config *domain.ScheduleConfig) *ConfigResponse {
	return &ConfigResponse{
		ResourceID:             config.ResourceID,
		SlotGranularityMinutes: config.SlotGranularityMinutes,
		BufferMinutes:          config.BufferMinutes,
		MinNoticeMinutes:       config.MinNoticeMinutes,
		MaxAdvanceDays:         config.MaxAdvanceDays,
		MaxConsecutive:         config.MaxConsecutive,
	}
}
