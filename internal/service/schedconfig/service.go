package schedconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/PMS-SchedulingService/internal/infra/storage/schedconfig"
)

// Service сервис настроек расчёта слотов
//
// Иерархия разрешения: запись ресурса -> глобальная запись в БД ->
// глобальные значения из файла конфигурации
type Service struct {
	repo     ConfigRepository
	fallback *domain.ScheduleConfig
	logger   Logger
}

// NewService создает новый сервис настроек
// fallback - глобальные значения из файла конфигурации
func NewService(repo ConfigRepository, fallback *domain.ScheduleConfig, logger Logger) *Service {
	if fallback == nil {
		fallback = domain.DefaultScheduleConfig()
	}
	return &Service{
		repo:     repo,
		fallback: fallback,
		logger:   logger,
	}
}

// ConfigFor возвращает действующие настройки для ресурса
// Никогда не возвращает ErrConfigNotFound - при отсутствии записей
// в БД действуют значения из файла конфигурации
func (s *Service) ConfigFor(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error) {
	config, err := s.repo.GetWithHierarchy(ctx, resourceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return s.fallback, nil
		}
		return nil, fmt.Errorf("%w: ConfigFor - repository error: %v", ErrInternal, err)
	}
	return config, nil
}

// GetByResource возвращает собственную конфигурацию ресурса
func (s *Service) GetByResource(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error) {
	s.logger.Info("GetByResource: fetching config for resource=%d", resourceID)

	config, err := s.repo.GetByResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetByResource: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: GetByResource - repository error: %v", ErrInternal, err)
	}

	return config, nil
}

// Update создает или обновляет конфигурацию ресурса
func (s *Service) Update(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	if err := validateConfig(config); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: config id=%d saved for resource=%v", updated.ID, updated.ResourceID)
	return updated, nil
}

func validateConfig(config *domain.ScheduleConfig) error {
	if config.SlotGranularityMinutes < domain.MinDurationMinutes || config.SlotGranularityMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: slot granularity must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if config.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative", ErrInvalidInput)
	}
	if config.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: min notice must not be negative", ErrInvalidInput)
	}
	if config.MaxAdvanceDays < 0 {
		return fmt.Errorf("%w: max advance days must not be negative", ErrInvalidInput)
	}
	if config.MaxConsecutive < 0 {
		return fmt.Errorf("%w: max consecutive must not be negative", ErrInvalidInput)
	}
	return nil
}
