package dealership

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

func newGormMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(gdb), mock
}

func TestRepository_GetDealership(t *testing.T) {
	repo, mock := newGormMock(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "dealerships" ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "email", "created_at", "updated_at"}).
			AddRow(id.String(), "Downtown Motors", "1 Main St", "+100", "sales@example.com", now, now))
	mock.ExpectQuery(`SELECT \* FROM "working_hours" WHERE "working_hours"."dealership_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "dealership_id", "day_of_week", "open_time", "close_time", "is_open"}).
			AddRow(uuid.NewString(), id.String(), "MONDAY", "09:00", "18:00", true).
			AddRow(uuid.NewString(), id.String(), "SUNDAY", "00:00", "00:00", false))

	d, err := repo.GetDealership(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, d.ID)
	assert.Equal(t, "Downtown Motors", d.Name)
	require.Len(t, d.WorkingHours, 2)

	mon, ok := d.ScheduleFor(domain.Monday)
	require.True(t, ok)
	assert.Equal(t, 9, mon.OpenHour())
	assert.Equal(t, 18, mon.CloseHour())
}

func TestRepository_GetDealership_NotFound(t *testing.T) {
	repo, mock := newGormMock(t)

	mock.ExpectQuery(`SELECT \* FROM "dealerships"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetDealership(context.Background())
	assert.ErrorIs(t, err, ErrDealershipNotFound)
}

func TestRepository_ReplaceWorkingHours(t *testing.T) {
	repo, mock := newGormMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "working_hours" .* ON CONFLICT \("dealership_id","day_of_week"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectCommit()

	err := repo.ReplaceWorkingHours(context.Background(), uuid.New(), domain.DefaultWorkingHours())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
