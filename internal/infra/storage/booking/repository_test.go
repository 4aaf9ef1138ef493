package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func bookingRow(b *domain.Booking) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		b.ID.String(), b.CarID.String(), b.UserID.String(), b.BookingDate,
		string(b.StartTime), string(b.EndTime), string(b.Status), nil,
		b.CreatedAt, b.UpdatedAt,
	)
}

func sampleBooking() *domain.Booking {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:          uuid.New(),
		CarID:       uuid.New(),
		UserID:      uuid.New(),
		BookingDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("11:00"),
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	b := sampleBooking()
	created := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO test_drive_bookings \(id,car_id,user_id,booking_date,start_time,end_time,status,notes\) VALUES .* RETURNING created_at, updated_at`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "2025-06-02", "10:00", "11:00", "PENDING", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	got, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO test_drive_bookings`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), sampleBooking())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_Create_ForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{name: "unknown user", constraint: "fk_test_drive_bookings_user", wantErr: ErrUserNotFound},
		{name: "unknown car", constraint: "fk_test_drive_bookings_car", wantErr: ErrCarNotFound},
		{name: "other constraint", constraint: "fk_other", wantErr: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)

			mock.ExpectQuery(`INSERT INTO test_drive_bookings`).
				WillReturnError(&pq.Error{Code: "23503", Constraint: tt.constraint, Message: "violates foreign key constraint"})

			_, err := repo.Create(context.Background(), sampleBooking())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRepository_Create_OtherError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO test_drive_bookings`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), sampleBooking())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	b := sampleBooking()

	mock.ExpectQuery(`SELECT id, car_id, .* FROM test_drive_bookings WHERE id = \$1$`).
		WithArgs(b.ID.String()).
		WillReturnRows(bookingRow(b))

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.CarID, got.CarID)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Nil(t, got.Notes)
}

func TestRepository_GetByIDForUpdate(t *testing.T) {
	repo, mock := newMock(t)
	b := sampleBooking()

	mock.ExpectQuery(`FROM test_drive_bookings WHERE id = \$1 FOR UPDATE`).
		WithArgs(b.ID.String()).
		WillReturnRows(bookingRow(b))

	_, err := repo.GetByIDForUpdate(context.Background(), b.ID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM test_drive_bookings`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ExistsActive(t *testing.T) {
	repo, mock := newMock(t)
	carID := uuid.New()
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT 1 FROM test_drive_bookings WHERE .*status IN \(\$\d+,\$\d+\) LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`SELECT 1 FROM test_drive_bookings`).
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsActive(context.Background(), carID, date, "10:00")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsActive(context.Background(), carID, date, "11:00")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_GetActiveByCarAndDate(t *testing.T) {
	repo, mock := newMock(t)
	b := sampleBooking()

	mock.ExpectQuery(`FROM test_drive_bookings WHERE .* ORDER BY start_time ASC`).
		WillReturnRows(bookingRow(b))

	got, err := repo.GetActiveByCarAndDate(context.Background(), b.CarID, b.BookingDate)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}

func TestRepository_ListDetails(t *testing.T) {
	repo, mock := newMock(t)
	b := sampleBooking()
	status := domain.StatusPending

	cols := append(append([]string{}, bookingColumns...),
		"make", "model", "year", "price", "images", "name", "email", "phone")

	mock.ExpectQuery(`FROM test_drive_bookings b JOIN cars c ON c.id = b.car_id JOIN users u ON u.id = b.user_id WHERE b.status = \$1 AND \(c.make ILIKE \$2 OR c.model ILIKE \$3 OR u.name ILIKE \$4 OR u.email ILIKE \$5\) ORDER BY b.booking_date DESC, b.start_time ASC`).
		WithArgs("PENDING", "%bmw%", "%bmw%", "%bmw%", "%bmw%").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			b.ID.String(), b.CarID.String(), b.UserID.String(), b.BookingDate,
			"10:00", "11:00", "PENDING", "call me",
			b.CreatedAt, b.UpdatedAt,
			"BMW", "X5", 2022, 55000.0, "{a.jpg,b.jpg}", "Jane", "jane@example.com", nil,
		))

	got, err := repo.ListDetails(context.Background(), domain.BookingsFilter{Status: &status, Search: " bmw "})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BMW", got[0].Car.Make)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got[0].Car.Images)
	assert.Equal(t, b.CarID, got[0].Car.ID)
	assert.Equal(t, "jane@example.com", got[0].User.Email)
	require.NotNil(t, got[0].Notes)
	assert.Equal(t, "call me", *got[0].Notes)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()
	updated := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE test_drive_bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 RETURNING updated_at`).
		WithArgs("CANCELLED", id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	got, err := repo.UpdateStatus(context.Background(), id, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestRepository_CountByStatus(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM test_drive_bookings GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("PENDING", 3).
			AddRow("COMPLETED", 2))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[domain.StatusPending])
	assert.Equal(t, 2, counts[domain.StatusCompleted])
	assert.Equal(t, 0, counts[domain.StatusNoShow])
}

func TestRepository_CountSoldCarsWithCompletedDrive(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT b.car_id\) FROM test_drive_bookings b JOIN cars c`).
		WithArgs("COMPLETED", "SOLD").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountSoldCarsWithCompletedDrive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
