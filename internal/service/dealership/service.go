package dealership

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	dealershipRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/dealership"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

// Service сервис настроек дилерского центра
type Service struct {
	repo   DealershipRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo DealershipRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetSchedule возвращает дилерский центр и недельное расписание
// (расписание по умолчанию, если не настроено)
func (s *Service) GetSchedule(ctx context.Context) (*models.ScheduleResponse, error) {
	d, err := s.repo.GetDealership(ctx)
	if err != nil && !errors.Is(err, dealershipRepo.ErrDealershipNotFound) {
		s.logger.Error("GetSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDealership(d), nil
}

// UpdateWorkingHours заменяет недельное расписание. Только для администратора.
// Требуется ровно одна запись на каждый день недели.
func (s *Service) UpdateWorkingHours(ctx context.Context, actor domain.Actor, req *models.UpdateWorkingHoursRequest) (*models.ScheduleResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}
	if !actor.IsAdmin() {
		s.logger.Warn("UpdateWorkingHours: user=%s is not an admin", actor.UserID)
		return nil, ErrForbidden
	}

	schedule, err := toDomainSchedule(req)
	if err != nil {
		s.logger.Warn("UpdateWorkingHours: validation failed: %v", err)
		return nil, err
	}

	d, err := s.repo.GetDealership(ctx)
	if err != nil {
		if errors.Is(err, dealershipRepo.ErrDealershipNotFound) {
			s.logger.Warn("UpdateWorkingHours: dealership is not configured")
			return nil, ErrDealershipNotFound
		}
		s.logger.Error("UpdateWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - repository error: %v", ErrInternal, err)
	}

	if err := s.repo.ReplaceWorkingHours(ctx, d.ID, schedule); err != nil {
		s.logger.Error("UpdateWorkingHours: failed to save schedule for dealership=%s: %v", d.ID, err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - save: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: schedule of dealership=%s replaced by user=%s", d.ID, actor.UserID)

	d.WorkingHours = schedule
	return models.FromDomainDealership(d), nil
}

func toDomainSchedule(req *models.UpdateWorkingHoursRequest) ([]domain.WorkingHours, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: workingHours is required", ErrInvalidInput)
	}

	schedule := make([]domain.WorkingHours, 0, len(req.WorkingHours))
	for _, item := range req.WorkingHours {
		day, err := domain.ParseDayOfWeek(item.DayOfWeek)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		wh := domain.WorkingHours{DayOfWeek: day, IsOpen: item.IsOpen}
		if item.IsOpen {
			if wh.OpenTime, err = types.NewTimeStringFromString(item.OpenTime); err != nil {
				return nil, fmt.Errorf("%w: %s openTime: %v", ErrInvalidInput, day, err)
			}
			if wh.CloseTime, err = types.NewTimeStringFromString(item.CloseTime); err != nil {
				return nil, fmt.Errorf("%w: %s closeTime: %v", ErrInvalidInput, day, err)
			}
		} else {
			// у закрытого дня время не используется, но колонки NOT NULL
			wh.OpenTime, wh.CloseTime = types.FromHour(0), types.FromHour(0)
		}

		schedule = append(schedule, wh)
	}

	if err := domain.ValidateWeeklySchedule(schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return schedule, nil
}
