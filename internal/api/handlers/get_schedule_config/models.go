package get_schedule_config

import (
	"github.com/m04kA/PMS-SchedulingService/internal/domain"
)

// ConfigResponse HTTP response model
type ConfigResponse struct {
	ResourceID             *int64 `json:"resourceId,omitempty"` // null = глобальная конфигурация
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	BufferMinutes          int    `json:"bufferMinutes"`
	MinNoticeMinutes       int    `json:"minNoticeMinutes"`
	MaxAdvanceDays         int    `json:"maxAdvanceDays"`
	MaxConsecutive         int    `json:"maxConsecutive"`
	Effective              bool   `json:"effective"` // true = действующая с учётом иерархии
}

// FromDomainConfig конвертирует доменную конфигурацию в HTTP response
func FromDomainConfig(config *domain.ScheduleConfig, effective bool) *ConfigResponse {
	return &ConfigResponse{
		ResourceID:             config.ResourceID,
		SlotGranularityMinutes: config.SlotGranularityMinutes,
		BufferMinutes:          config.BufferMinutes,
		MinNoticeMinutes:       config.MinNoticeMinutes,
		MaxAdvanceDays:         config.MaxAdvanceDays,
		MaxConsecutive:         config.MaxConsecutive,
		Effective:              effective,
	}
}
