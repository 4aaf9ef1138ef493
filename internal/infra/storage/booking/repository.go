package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TestDriveService/pkg/txmanager"
)

const (
	tableBookings = "test_drive_bookings"

	// uniqueViolation код ошибки PostgreSQL unique_violation
	uniqueViolation = "23505"
	// foreignKeyViolation код ошибки PostgreSQL foreign_key_violation
	foreignKeyViolation = "23503"

	constraintBookingCar  = "fk_test_drive_bookings_car"
	constraintBookingUser = "fk_test_drive_bookings_user"
)

var bookingColumns = []string{
	"id",
	"car_id",
	"user_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями тест-драйвов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Если в контексте есть транзакция, вставка выполняется в ней.
// Нарушение частичного уникального индекса (car_id, booking_date, start_time)
// для активных статусов возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"car_id",
			"user_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			booking.ID,
			booking.CarID,
			booking.UserID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch {
			case pqErr.Code == uniqueViolation:
				return nil, ErrSlotTaken
			case pqErr.Code == foreignKeyViolation && pqErr.Constraint == constraintBookingUser:
				return nil, fmt.Errorf("%w: Create - user id=%s", ErrUserNotFound, booking.UserID)
			case pqErr.Code == foreignKeyViolation && pqErr.Constraint == constraintBookingCar:
				return nil, fmt.Errorf("%w: Create - car id=%s", ErrCarNotFound, booking.CarID)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование с блокировкой строки (SELECT ... FOR UPDATE).
// Имеет смысл только внутри транзакции.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id.String()})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ExistsActive проверяет, есть ли активное бронирование автомобиля на дату и время начала
func (r *Repository) ExistsActive(ctx context.Context, carID uuid.UUID, date time.Time, startTime string) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableBookings).
		Where(squirrel.Eq{
			"car_id":       carID.String(),
			"booking_date": date.Format(domain.DateFormat),
			"start_time":   startTime,
			"status":       domain.StatusStrings(domain.ActiveStatuses),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActive - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActive - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetActiveByCarAndDate получает активные бронирования автомобиля на конкретную дату
func (r *Repository) GetActiveByCarAndDate(ctx context.Context, carID uuid.UUID, date time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"car_id":       carID.String(),
			"booking_date": date.Format(domain.DateFormat),
			"status":       domain.StatusStrings(domain.ActiveStatuses),
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCarAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCarAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetUpcomingByCar получает активные бронирования автомобиля начиная с даты from
func (r *Repository) GetUpcomingByCar(ctx context.Context, carID uuid.UUID, from time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"car_id": carID.String(),
			"status": domain.StatusStrings(domain.ActiveStatuses),
		}).
		Where(squirrel.GtOrEq{"booking_date": from.Format(domain.DateFormat)}).
		OrderBy("booking_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingByCar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingByCar - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListDetails получает бронирования вместе с данными автомобиля и клиента.
// Поиск регистронезависимый по марке и модели автомобиля, имени и email клиента.
// Сортировка: дата по убыванию, время начала по возрастанию.
func (r *Repository) ListDetails(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"b.id",
		"b.car_id",
		"b.user_id",
		"b.booking_date",
		"b.start_time",
		"b.end_time",
		"b.status",
		"b.notes",
		"b.created_at",
		"b.updated_at",
		"c.make",
		"c.model",
		"c.year",
		"c.price",
		"c.images",
		"u.name",
		"u.email",
		"u.phone",
	).
		From(tableBookings + " b").
		Join("cars c ON c.id = b.car_id").
		Join("users u ON u.id = b.user_id")

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"b.user_id": filter.UserID.String()})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"c.make": pattern},
			squirrel.ILike{"c.model": pattern},
			squirrel.ILike{"u.name": pattern},
			squirrel.ILike{"u.email": pattern},
		})
	}

	query, args, err := builder.OrderBy("b.booking_date DESC", "b.start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		var d domain.BookingDetails
		var images []string

		err := rows.Scan(
			&d.ID,
			&d.CarID,
			&d.UserID,
			&d.BookingDate,
			&d.StartTime,
			&d.EndTime,
			&d.Status,
			&d.Notes,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.Car.Make,
			&d.Car.Model,
			&d.Car.Year,
			&d.Car.Price,
			pq.Array(&images),
			&d.User.Name,
			&d.User.Email,
			&d.User.Phone,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDetails - scan row: %v", ErrScanRow, err)
		}

		d.Car.ID = d.CarID
		d.Car.Images = images
		d.User.ID = d.UserID
		result = append(result, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDetails - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatus обновляет статус бронирования и возвращает новое значение updated_at
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (time.Time, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrBookingNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// CountByStatus возвращает количество бронирований по каждому статусу
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From(tableBookings).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var status domain.BookingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountSoldCarsWithCompletedDrive считает проданные автомобили, у которых был завершенный тест-драйв
func (r *Repository) CountSoldCarsWithCompletedDrive(ctx context.Context) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT b.car_id)").
		From(tableBookings + " b").
		Join("cars c ON c.id = b.car_id").
		Where(squirrel.Eq{
			"b.status": domain.StatusCompleted,
			"c.status": domain.CarSold,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountSoldCarsWithCompletedDrive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSoldCarsWithCompletedDrive - execute query: %v", ErrExecQuery, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.CarID,
		&booking.UserID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
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
