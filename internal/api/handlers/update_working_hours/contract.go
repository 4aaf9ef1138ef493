package update_working_hours

import (
	"context"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
)

type DealershipService interface {
	UpdateWorkingHours(ctx context.Context, actor domain.Actor, req *models.UpdateWorkingHoursRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
