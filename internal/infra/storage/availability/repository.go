package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SLN-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписания: рабочие часы и заблокированные интервалы
// Обе сущности живут в одной таблице availability, различаются флагом is_blocked
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOpenHours получает рабочие окна на конкретную дату
func (r *Repository) GetOpenHours(ctx context.Context, day time.Time) ([]domain.OpenHoursEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("availability").
		Where(squirrel.Eq{"day": day, "is_blocked": false}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.OpenHoursEntry, 0)
	for rows.Next() {
		var entry domain.OpenHoursEntry
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&entry.ID,
			&entry.Day,
			&entry.StartTime,
			&entry.EndTime,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetOpenHours - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOpenHours - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// GetBlocked получает заблокированные интервалы на конкретную дату
func (r *Repository) GetBlocked(ctx context.Context, day time.Time) ([]domain.BlockedTimeEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day",
		"start_time",
		"end_time",
		"reason",
		"created_at",
		"updated_at",
	).
		From("availability").
		Where(squirrel.Eq{"day": day, "is_blocked": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocked - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocked - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.BlockedTimeEntry, 0)
	for rows.Next() {
		var entry domain.BlockedTimeEntry
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&entry.ID,
			&entry.Day,
			&entry.StartTime,
			&entry.EndTime,
			&entry.Reason,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetBlocked - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlocked - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// GetDaysWithOpenHours получает даты периода, у которых есть хотя бы одно рабочее окно
// Используется календарем виджета бронирования для первичного отбора дат
func (r *Repository) GetDaysWithOpenHours(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT day").
		From("availability").
		Where(squirrel.Eq{"is_blocked": false}).
		Where(squirrel.GtOrEq{"day": from}).
		Where(squirrel.LtOrEq{"day": to}).
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDaysWithOpenHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaysWithOpenHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]time.Time, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: GetDaysWithOpenHours - scan day: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDaysWithOpenHours - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// ReplaceOpenHours заменяет рабочие окна даты на единственное окно (upsert-семантика)
// Выполняется в две операции (delete + insert), поэтому вызывающая сторона
// оборачивает вызов в транзакцию
func (r *Repository) ReplaceOpenHours(ctx context.Context, day time.Time, start, end types.TimeString) (*domain.OpenHoursEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"day": day, "is_blocked": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceOpenHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceOpenHours - execute delete: %v", ErrExecQuery, err)
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("availability").
		Columns("day", "start_time", "end_time", "is_blocked").
		Values(day, start, end, false).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceOpenHours - build insert query: %v", ErrBuildQuery, err)
	}

	entry := domain.OpenHoursEntry{
		Day:       day,
		StartTime: start,
		EndTime:   end,
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(
		&entry.ID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: ReplaceOpenHours - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

// AddBlock добавляет заблокированный интервал
func (r *Repository) AddBlock(ctx context.Context, day time.Time, start, end types.TimeString, reason *string) (*domain.BlockedTimeEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability").
		Columns("day", "start_time", "end_time", "is_blocked", "reason").
		Values(day, start, end, true, reason).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddBlock - build insert query: %v", ErrBuildQuery, err)
	}

	entry := domain.BlockedTimeEntry{
		Day:       day,
		StartTime: start,
		EndTime:   end,
		Reason:    reason,
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: AddBlock - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

// RemoveBlock удаляет заблокированный интервал по ID
func (r *Repository) RemoveBlock(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"id": id, "is_blocked": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
