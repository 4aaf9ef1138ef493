package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/car"
	dealershipRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/dealership"
	"github.com/m04kA/SMC-TestDriveService/internal/integrations/events"
)

// UseCase use case для бронирования тест-драйва
type UseCase struct {
	bookingRepo    BookingRepository
	carRepo        CarRepository
	dealershipRepo DealershipRepository
	txManager      TransactionManager
	cache          Cache
	publisher      EventPublisher
	metrics        Metrics
	timeProvider   TimeProvider
	location       *time.Location
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	dealershipRepo DealershipRepository,
	txManager TransactionManager,
	cache Cache,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		carRepo:        carRepo,
		dealershipRepo: dealershipRepo,
		txManager:      txManager,
		cache:          cache,
		publisher:      publisher,
		metrics:        metrics,
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

// Execute бронирует слот.
//
// В одной транзакции: блокировка строки автомобиля (FOR SHARE), быстрая проверка
// занятости слота и вставка PENDING бронирования. Гонку двух одновременных вставок
// решает частичный уникальный индекс: проигравший получает ErrSlotConflict.
// После коммита сбрасывается кэш и публикуется событие, их ошибки только логируются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, car=%s, date=%s, time=%s-%s",
		req.Actor.UserID, req.CarID, req.BookingDate, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	in, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(in.date, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("CreateBooking: date %s rejected: %v", req.BookingDate, err)
		return nil, err
	}

	// 2. Слот должен попадать в часы работы дилера
	schedule, err := uc.loadSchedule(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateWorkingHours(schedule, in.date, in.start, in.end); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 3. Проверки и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		car, err := uc.carRepo.GetByIDForShare(txCtx, req.CarID)
		if err != nil {
			if errors.Is(err, carRepo.ErrCarNotFound) {
				uc.logger.Warn("CreateBooking: car id=%s not found", req.CarID)
				return ErrCarUnavailable
			}
			uc.logger.Error("CreateBooking: failed to get car id=%s: %v", req.CarID, err)
			return fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
		}

		if !car.IsBookable() {
			uc.logger.Warn("CreateBooking: car id=%s has status %s", car.ID, car.Status)
			return ErrCarUnavailable
		}

		taken, err := uc.bookingRepo.ExistsActive(txCtx, req.CarID, in.date, in.start.String())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if taken {
			return ErrSlotConflict
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ID:          uuid.New(),
			CarID:       req.CarID,
			UserID:      req.Actor.UserID,
			BookingDate: in.date,
			StartTime:   in.start,
			EndTime:     in.end,
			Status:      domain.StatusPending,
			Notes:       in.notes,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotConflict
			}
			if errors.Is(err, bookingRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: user id=%s not found", req.Actor.UserID)
				return ErrUserNotFound
			}
			if errors.Is(err, bookingRepo.ErrCarNotFound) {
				return ErrCarUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.IncBookingConflicts()
			uc.logger.Warn("CreateBooking: slot %s %s already booked for car=%s",
				req.BookingDate, in.start, req.CarID)
			return nil, err
		}
		if errors.Is(err, ErrCarUnavailable) || errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%s", result.ID)
	uc.metrics.IncBookingsCreated()

	// 4. Уведомления после коммита
	uc.notify(context.WithoutCancel(ctx), result)

	return &Response{
		ID:          result.ID,
		CarID:       result.CarID,
		UserID:      result.UserID,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      result.Status,
		Notes:       result.Notes,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

func (uc *UseCase) loadSchedule(ctx context.Context) ([]domain.WorkingHours, error) {
	dealership, err := uc.dealershipRepo.GetDealership(ctx)
	if err != nil && !errors.Is(err, dealershipRepo.ErrDealershipNotFound) {
		uc.logger.Error("CreateBooking: failed to get dealership: %v", err)
		return nil, fmt.Errorf("%w: failed to get dealership: %v", ErrInternal, err)
	}

	schedule := domain.EffectiveSchedule(dealership)
	if err := domain.CheckNoDuplicateDays(schedule); err != nil {
		uc.logger.Error("CreateBooking: broken schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return schedule, nil
}

func (uc *UseCase) notify(ctx context.Context, b *domain.Booking) {
	if err := uc.cache.InvalidateBooking(ctx, b.CarID, b.UserID); err != nil {
		uc.metrics.IncCacheInvalidation("error")
		uc.logger.Warn("CreateBooking: cache invalidation failed for booking id=%s: %v", b.ID, err)
	} else {
		uc.metrics.IncCacheInvalidation("ok")
	}

	err := uc.publisher.PublishBookingCreated(ctx, events.BookingCreatedEvent{
		BookingID:   b.ID.String(),
		CarID:       b.CarID.String(),
		UserID:      b.UserID.String(),
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		OccurredAt:  uc.timeProvider.Now().UTC(),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", b.ID, err)
	}
}
