package dashboard

import (
	"context"
	"fmt"
	"math"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dashboard/models"
)

// Service сервис статистики для админской панели
type Service struct {
	carRepo     CarRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(carRepo CarRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Get собирает статистику по автомобилям и тест-драйвам. Только для администратора.
func (s *Service) Get(ctx context.Context, actor domain.Actor) (*models.DashboardResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}
	if !actor.IsAdmin() {
		s.logger.Warn("Get: user=%s is not an admin", actor.UserID)
		return nil, ErrForbidden
	}

	cars, err := s.carRepo.CountStats(ctx)
	if err != nil {
		s.logger.Error("Get: failed to count cars: %v", err)
		return nil, fmt.Errorf("%w: Get - cars: %v", ErrInternal, err)
	}

	counts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Get: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: Get - bookings: %v", ErrInternal, err)
	}

	drives := domain.TestDriveStats{
		Pending:   counts[domain.StatusPending],
		Confirmed: counts[domain.StatusConfirmed],
		Completed: counts[domain.StatusCompleted],
		Cancelled: counts[domain.StatusCancelled],
		NoShow:    counts[domain.StatusNoShow],
	}
	for _, n := range counts {
		drives.Total += n
	}

	if drives.Completed > 0 {
		sold, err := s.bookingRepo.CountSoldCarsWithCompletedDrive(ctx)
		if err != nil {
			s.logger.Error("Get: failed to count conversions: %v", err)
			return nil, fmt.Errorf("%w: Get - conversions: %v", ErrInternal, err)
		}
		drives.ConversionRate = ConversionRate(sold, drives.Completed)
	}

	return models.FromDomainStats(domain.DashboardStats{Cars: cars, TestDrives: drives}), nil
}

// ConversionRate процент проданных после тест-драйва, округленный до сотых
func ConversionRate(sold, completed int) float64 {
	if completed == 0 {
		return 0
	}
	return math.Round(float64(sold)/float64(completed)*100*100) / 100
}
