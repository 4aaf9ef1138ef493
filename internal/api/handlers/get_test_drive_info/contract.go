package get_test_drive_info

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/service/bookings/models"
)

type BookingService interface {
	GetCarTestDriveInfo(ctx context.Context, carID uuid.UUID) (*models.TestDriveInfoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
