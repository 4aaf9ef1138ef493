package get_dealership_schedule

import (
	"context"

	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
)

type DealershipService interface {
	GetSchedule(ctx context.Context) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
