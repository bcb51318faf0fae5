package schedconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PMS-SchedulingService/internal/domain"
	"github.com/m04kA/PMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PMS-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"resource_id",
	"slot_granularity_minutes",
	"buffer_minutes",
	"min_notice_minutes",
	"max_advance_days",
	"max_consecutive",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с настройками расчёта слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWithHierarchy получает конфигурацию для ресурса с учетом иерархии:
// 1. Запись для конкретного ресурса (resource_id = resourceID)
// 2. Глобальная запись (resource_id IS NULL)
// Возвращает ErrConfigNotFound, если нет ни той, ни другой
func (r *Repository) GetWithHierarchy(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Специфичная запись сортируется раньше глобальной
	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		Where(squirrel.Or{
			squirrel.Eq{"resource_id": resourceID},
			squirrel.Eq{"resource_id": nil},
		}).
		OrderBy("resource_id NULLS LAST").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWithHierarchy - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	config, err := scanConfig(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithHierarchy - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetByResource получает конфигурацию для конкретного ресурса без иерархии
func (r *Repository) GetByResource(ctx context.Context, resourceID int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	config, err := scanConfig(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// Upsert создает или обновляет конфигурацию ресурса
func (r *Repository) Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"resource_id",
			"slot_granularity_minutes",
			"buffer_minutes",
			"min_notice_minutes",
			"max_advance_days",
			"max_consecutive",
		).
		Values(
			config.ResourceID,
			config.SlotGranularityMinutes,
			config.BufferMinutes,
			config.MinNoticeMinutes,
			config.MaxAdvanceDays,
			config.MaxConsecutive,
		).
		Suffix(`ON CONFLICT (resource_id) DO UPDATE SET
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			min_notice_minutes = EXCLUDED.min_notice_minutes,
			max_advance_days = EXCLUDED.max_advance_days,
			max_consecutive = EXCLUDED.max_consecutive,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию ресурса (ресурс возвращается к глобальным настройкам)
func (r *Repository) Delete(ctx context.Context, resourceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_config").
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

func scanConfig(scan func(dest ...interface{}) error) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&config.ID,
		&config.ResourceID,
		&config.SlotGranularityMinutes,
		&config.BufferMinutes,
		&config.MinNoticeMinutes,
		&config.MaxAdvanceDays,
		&config.MaxConsecutive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time
	return &config, nil
}
