package dashboard

import (
	"context"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

// CarRepository статистика каталога
type CarRepository interface {
	CountStats(ctx context.Context) (domain.CarStats, error)
}

// BookingRepository статистика бронирований
type BookingRepository interface {
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error)
	CountSoldCarsWithCompletedDrive(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
