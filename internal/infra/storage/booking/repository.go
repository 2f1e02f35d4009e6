package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SLN-BookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

// activeSlotConstraint частичный уникальный индекс, гарантирующий
// не более одного активного бронирования на (дата, время начала)
const activeSlotConstraint = "bookings_active_slot_key"

// bookingColumns колонки bookings с агрегированными add-on'ами
var bookingColumns = []string{
	"b.id",
	"b.service_id",
	"b.booking_date",
	"b.start_time",
	"b.duration_minutes",
	"b.status",
	"b.client_name",
	"b.client_email",
	"b.client_phone",
	"b.language",
	"b.custom_request",
	"b.custom_image",
	"b.token",
	"b.price",
	"b.service_name",
	"b.google_event_id",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
	"COALESCE(ARRAY_AGG(ba.addon_id) FILTER (WHERE ba.addon_id IS NOT NULL), '{}') AS addon_ids",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование вместе со связанными add-on'ами
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание с проверкой доступности слота обязано выполняться в транзакции -
// последовательность "проверить свободно, затем вставить" иначе гонится.
// Финальная страховка - частичный уникальный индекс bookings_active_slot_key:
// его нарушение транслируется в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"client_name",
			"client_email",
			"client_phone",
			"language",
			"custom_request",
			"custom_image",
			"token",
			"price",
			"service_name",
		).
		Values(
			booking.ServiceID,
			booking.Date,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.ClientName,
			booking.ClientEmail,
			booking.ClientPhone,
			booking.Language,
			booking.CustomRequest,
			booking.CustomImage,
			booking.Token,
			booking.Price,
			booking.ServiceName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isActiveSlotViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.insertAddons(ctx, executor, booking.ID, booking.AddonIDs); err != nil {
		return nil, err
	}

	return booking, nil
}

// insertAddons сохраняет связи бронирования с add-on услугами
func (r *Repository) insertAddons(ctx context.Context, executor DBExecutor, bookingID int64, addonIDs []int64) error {
	if len(addonIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_addons").
		Columns("booking_id", "addon_id")

	for _, addonID := range addonIDs {
		insertBuilder = insertBuilder.Values(bookingID, addonID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertAddons - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertAddons - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"b.id": id})
}

// GetByToken получает бронирование по токену самостоятельного управления
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"b.token": token})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("booking_addons ba ON ba.booking_id = b.id").
		Where(where).
		GroupBy("b.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByDate получает бронирования на конкретную дату
// activeOnly = true отфильтровывает отмененные.
// Внутри транзакции блокирует строки через FOR UPDATE OF b -
// так последовательность "проверить слот, затем вставить" сериализуется
func (r *Repository) GetByDate(ctx context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("booking_addons ba ON ba.booking_id = b.id").
		Where(squirrel.Eq{"b.booking_date": date}).
		GroupBy("b.id").
		OrderBy("b.start_time ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": domain.StatusActive})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetWithFilter получает бронирования за период с гибкой фильтрацией
// Используется админской панелью и синхронизацией календаря
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("booking_addons ba ON ba.booking_id = b.id").
		GroupBy("b.id").
		OrderBy("b.booking_date ASC, b.start_time ASC")

	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.booking_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"b.booking_date": *filter.ToDate})
	}
	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": domain.StatusActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel помечает бронирование отмененным
// Диапазон бронирования освобождается для следующего же запроса слотов
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// SetGoogleEventID сохраняет или очищает ссылку на событие внешнего календаря
func (r *Repository) SetGoogleEventID(ctx context.Context, id int64, eventID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("google_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetGoogleEventID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetGoogleEventID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetGoogleEventID - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// isActiveSlotViolation проверяет, что ошибка - нарушение уникального индекса активного слота
func isActiveSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == activeSlotConstraint
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку результата в модель бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var addonIDs pq.Int64Array

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.Date,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.Language,
		&booking.CustomRequest,
		&booking.CustomImage,
		&booking.Token,
		&booking.Price,
		&booking.ServiceName,
		&booking.GoogleEventID,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
		&addonIDs,
	)

	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	booking.AddonIDs = []int64(addonIDs)

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
