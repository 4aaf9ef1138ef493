package car

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

var carColumns = []string{"id", "make", "model", "year", "price", "color", "status", "featured", "images"}

func TestRepository_GetByIDForShare(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, make, model, year, price, color, status, featured, images FROM cars WHERE id = \$1 FOR SHARE`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(carColumns).
			AddRow(id.String(), "Audi", "A4", 2021, 32000.0, "black", "AVAILABLE", true, "{front.jpg}"))

	car, err := NewRepository(db).GetByIDForShare(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, car.ID)
	assert.Equal(t, domain.CarAvailable, car.Status)
	assert.True(t, car.IsBookable())
	assert.Equal(t, []string{"front.jpg"}, car.Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM cars WHERE id = \$1$`).WillReturnError(sql.ErrNoRows)

	_, err = NewRepository(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestRepository_CountStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\), .* FROM cars`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "available", "sold", "unavailable", "featured"}).
			AddRow(10, 6, 3, 1, 2))

	stats, err := NewRepository(db).CountStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CarStats{Total: 10, Available: 6, Sold: 3, Unavailable: 1, Featured: 2}, stats)
}
