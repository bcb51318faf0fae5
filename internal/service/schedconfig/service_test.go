package schedconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	storage "github.com/m04kA/PMS-SchedulingService/internal/infra/storage/schedconfig"
)

type fakeRepo struct {
	byResource map[int64]*domain.ScheduleConfig
	global     *domain.ScheduleConfig
	upserted   *domain.ScheduleConfig
}

func (f *fakeRepo) GetWithHierarchy(_ context.Context, resourceID int64) (*domain.ScheduleConfig, error) {
	if config, ok := f.byResource[resourceID]; ok {
		return config, nil
	}
	if f.global != nil {
		return f.global, nil
	}
	return nil, storage.ErrConfigNotFound
}

func (f *fakeRepo) GetByResource(_ context.Context, resourceID int64) (*domain.ScheduleConfig, error) {
	if config, ok := f.byResource[resourceID]; ok {
		return config, nil
	}
	return nil, storage.ErrConfigNotFound
}

func (f *fakeRepo) Upsert(_ context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	saved := *config
	saved.ID = 1
	f.upserted = &saved
	return &saved, nil
}

func (f *fakeRepo) Delete(_ context.Context, resourceID int64) error {
	delete(f.byResource, resourceID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func resourceConfig(resourceID int64, granularity int) *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ResourceID:             &resourceID,
		SlotGranularityMinutes: granularity,
		BufferMinutes:          5,
		MinNoticeMinutes:       30,
		MaxAdvanceDays:         90,
		MaxConsecutive:         4,
	}
}

func TestConfigFor_ResourceSpecific(t *testing.T) {
	repo := &fakeRepo{byResource: map[int64]*domain.ScheduleConfig{
		1: resourceConfig(1, 20),
	}}
	svc := NewService(repo, domain.DefaultScheduleConfig(), nopLogger{})

	config, err := svc.ConfigFor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 20, config.SlotGranularityMinutes)
}

func TestConfigFor_FallsBackToFileConfig(t *testing.T) {
	fallback := domain.DefaultScheduleConfig()
	fallback.SlotGranularityMinutes = 10
	svc := NewService(&fakeRepo{}, fallback, nopLogger{})

	// Ни записи ресурса, ни глобальной записи: действуют значения из файла
	config, err := svc.ConfigFor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, config.SlotGranularityMinutes)
}

func TestConfigFor_NilFallbackUsesDefaults(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, nopLogger{})

	config, err := svc.ConfigFor(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, config.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultMaxConsecutive, config.MaxConsecutive)
}

func TestGetByResource_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, nopLogger{})

	_, err := svc.GetByResource(context.Background(), 1)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestUpdate(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, nopLogger{})

	updated, err := svc.Update(context.Background(), resourceConfig(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, 20, repo.upserted.SlotGranularityMinutes)
}

func TestUpdate_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, nopLogger{})

	tests := []struct {
		name   string
		mutate func(*domain.ScheduleConfig)
	}{
		{"granularity too small", func(c *domain.ScheduleConfig) { c.SlotGranularityMinutes = 1 }},
		{"granularity too large", func(c *domain.ScheduleConfig) { c.SlotGranularityMinutes = 600 }},
		{"negative buffer", func(c *domain.ScheduleConfig) { c.BufferMinutes = -1 }},
		{"negative notice", func(c *domain.ScheduleConfig) { c.MinNoticeMinutes = -1 }},
		{"negative advance", func(c *domain.ScheduleConfig) { c.MaxAdvanceDays = -1 }},
		{"negative consecutive", func(c *domain.ScheduleConfig) { c.MaxConsecutive = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := resourceConfig(1, 15)
			tt.mutate(config)

			_, err := svc.Update(context.Background(), config)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
