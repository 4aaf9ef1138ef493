package car

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TestDriveService/pkg/txmanager"
)

const tableCars = "cars"

// Repository читает каталог автомобилей. Каталогом владеет другой сервис,
// здесь только выборки, нужные для тест-драйвов.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает автомобиль по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	return r.get(ctx, id, "")
}

// GetByIDForShare получает автомобиль с разделяемой блокировкой строки.
// Пока транзакция бронирования открыта, статус автомобиля не может измениться.
func (r *Repository) GetByIDForShare(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	return r.get(ctx, id, "FOR SHARE")
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, lock string) (*domain.Car, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "make", "model", "year", "price", "color", "status", "featured", "images").
		From(tableCars).
		Where(squirrel.Eq{"id": id.String()})
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var car domain.Car
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.Price,
		&car.Color,
		&car.Status,
		&car.Featured,
		pq.Array(&car.Images),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan car: %v", ErrExecQuery, err)
	}

	return &car, nil
}

// CountStats считает автомобили каталога по статусам
func (r *Repository) CountStats(ctx context.Context) (domain.CarStats, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'AVAILABLE')",
		"COUNT(*) FILTER (WHERE status = 'SOLD')",
		"COUNT(*) FILTER (WHERE status = 'UNAVAILABLE')",
		"COUNT(*) FILTER (WHERE featured)",
	).
		From(tableCars).
		ToSql()
	if err != nil {
		return domain.CarStats{}, fmt.Errorf("%w: CountStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.CarStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Available,
		&stats.Sold,
		&stats.Unavailable,
		&stats.Featured,
	)
	if err != nil {
		return domain.CarStats{}, fmt.Errorf("%w: CountStats - scan: %v", ErrExecQuery, err)
	}

	return stats, nil
}
