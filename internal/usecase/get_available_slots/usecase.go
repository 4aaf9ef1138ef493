package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	carRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/car"
	dealershipRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/dealership"
)

// UseCase use case для получения свободных слотов тест-драйва
type UseCase struct {
	carRepo        CarRepository
	bookingRepo    BookingRepository
	dealershipRepo DealershipRepository
	timeProvider   TimeProvider
	location       *time.Location
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс дилера, в нем определяется "сегодня".
func NewUseCase(
	carRepo CarRepository,
	bookingRepo BookingRepository,
	dealershipRepo DealershipRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		carRepo:        carRepo,
		bookingRepo:    bookingRepo,
		dealershipRepo: dealershipRepo,
		timeProvider:   &RealTimeProvider{},
		location:       location,
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов.
// Расписание и бронирования читаются из хранилища на момент вызова, без кэша.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: car=%s, date=%s", req.CarID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.CivilDate(req.Date)
	if domain.IsPastDate(date, uc.timeProvider.Now(), uc.location) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	response := &Response{CarID: req.CarID, Date: date, Slots: []domain.Slot{}}

	// 2. Автомобиль должен существовать
	car, err := uc.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("GetAvailableSlots: car id=%s not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get car id=%s: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	// Недоступный для бронирования автомобиль: свободных слотов нет
	if !car.IsBookable() {
		uc.logger.Info("GetAvailableSlots: car id=%s has status %s, no slots", car.ID, car.Status)
		return response, nil
	}

	// 3. Расписание дилера (или расписание по умолчанию)
	schedule, err := uc.loadSchedule(ctx)
	if err != nil {
		return nil, err
	}

	// 4. Активные бронирования автомобиля на дату
	bookings, err := uc.bookingRepo.GetActiveByCarAndDate(ctx, req.CarID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	response.Slots = ComputeSlots(date, schedule, bookings)

	uc.logger.Info("GetAvailableSlots: %d free slots for car=%s, date=%s",
		len(response.Slots), req.CarID, date.Format(domain.DateFormat))

	return response, nil
}

func (uc *UseCase) loadSchedule(ctx context.Context) ([]domain.WorkingHours, error) {
	dealership, err := uc.dealershipRepo.GetDealership(ctx)
	if err != nil && !errors.Is(err, dealershipRepo.ErrDealershipNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get dealership: %v", err)
		return nil, fmt.Errorf("%w: failed to get dealership: %v", ErrInternal, err)
	}

	if dealership == nil || len(dealership.WorkingHours) == 0 {
		uc.logger.Info("GetAvailableSlots: using default working hours")
	}

	schedule := domain.EffectiveSchedule(dealership)
	if err := domain.CheckNoDuplicateDays(schedule); err != nil {
		uc.logger.Error("GetAvailableSlots: broken schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return schedule, nil
}
