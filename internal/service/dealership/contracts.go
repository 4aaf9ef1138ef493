package dealership

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

// DealershipRepository интерфейс репозитория дилерского центра
type DealershipRepository interface {
	GetDealership(ctx context.Context) (*domain.Dealership, error)
	ReplaceWorkingHours(ctx context.Context, dealershipID uuid.UUID, schedule []domain.WorkingHours) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
