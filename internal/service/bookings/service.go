package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/car"
	dealershipRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/dealership"
	"github.com/m04kA/SMC-TestDriveService/internal/integrations/events"
	"github.com/m04kA/SMC-TestDriveService/internal/service/bookings/models"
	dealershipModels "github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
)

// Service сервис для работы с бронированиями тест-драйвов
type Service struct {
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

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	dealershipRepo DealershipRepository,
	txManager TransactionManager,
	cache Cache,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
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
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// transitionResult результат смены статуса
type transitionResult struct {
	booking *domain.Booking
	from    domain.BookingStatus
	changed bool
}

// GetByID получает бронирование по ID.
// Видно владельцу бронирования или администратору.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.UserID)

	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !booking.IsOwnedBy(actor.UserID) && !actor.IsAdmin() {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.UserID, id)
		return nil, ErrForbidden
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings возвращает бронирования текущего пользователя (сначала поздние даты).
// Список без фильтра по статусу кэшируется.
func (s *Service) GetUserBookings(ctx context.Context, actor domain.Actor, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	filter := domain.BookingsFilter{UserID: &actor.UserID}
	if req != nil && req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, actor.UserID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		filter.Status = &status
	}

	cacheable := filter.Status == nil
	var key string
	if cacheable {
		key, cacheable = s.cacheKey(ctx, "GetUserBookings", cache.UserBookingsScope(actor.UserID))
	}

	if cacheable {
		var cached models.BookingListResponse
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("GetUserBookings: cache read failed for user=%s: %v", actor.UserID, err)
		}
		if hit {
			return &cached, nil
		}
	}

	list, err := s.bookingRepo.ListDetails(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingDetails(list, false)

	if cacheable {
		if err := s.cache.SetJSON(ctx, key, resp); err != nil {
			s.logger.Warn("GetUserBookings: cache write failed for user=%s: %v", actor.UserID, err)
		}
	}

	s.logger.Info("GetUserBookings: found %d bookings for user=%s", len(resp.Bookings), actor.UserID)
	return resp, nil
}

// GetAdminBookings возвращает все бронирования с данными автомобиля и клиента. Только для администратора.
func (s *Service) GetAdminBookings(ctx context.Context, actor domain.Actor, req *models.GetAdminBookingsRequest) (*models.BookingListResponse, error) {
	if err := s.requireAdmin("GetAdminBookings", actor); err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{}
	if req != nil {
		filter.Search = strings.TrimSpace(req.Search)
		if utf8.RuneCountInString(filter.Search) > domain.MaxSearchLength {
			return nil, fmt.Errorf("%w: search must be at most %d characters", ErrInvalidInput, domain.MaxSearchLength)
		}
		if req.Status != nil {
			status, err := domain.ParseBookingStatus(*req.Status)
			if err != nil {
				s.logger.Warn("GetAdminBookings: invalid status=%s", *req.Status)
				return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
			}
			filter.Status = &status
		}
	}

	list, err := s.bookingRepo.ListDetails(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdminBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAdminBookings: found %d bookings, search=%q", len(list), filter.Search)
	return models.FromDomainBookingDetails(list, true), nil
}

// GetCarTestDriveInfo возвращает автомобиль, дилерский центр с расписанием
// и ближайшие активные бронирования автомобиля начиная с сегодняшнего дня
func (s *Service) GetCarTestDriveInfo(ctx context.Context, carID uuid.UUID) (*models.TestDriveInfoResponse, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			s.logger.Warn("GetCarTestDriveInfo: car id=%s not found", carID)
			return nil, ErrCarNotFound
		}
		s.logger.Error("GetCarTestDriveInfo: failed to get car id=%s: %v", carID, err)
		return nil, fmt.Errorf("%w: GetCarTestDriveInfo - car: %v", ErrInternal, err)
	}

	dealership, err := s.dealershipRepo.GetDealership(ctx)
	if err != nil && !errors.Is(err, dealershipRepo.ErrDealershipNotFound) {
		s.logger.Error("GetCarTestDriveInfo: failed to get dealership: %v", err)
		return nil, fmt.Errorf("%w: GetCarTestDriveInfo - dealership: %v", ErrInternal, err)
	}

	upcoming, err := s.upcomingBookings(ctx, carID)
	if err != nil {
		return nil, err
	}

	schedule := dealershipModels.FromDomainDealership(dealership)

	return &models.TestDriveInfoResponse{
		Car:              models.FromDomainCar(car),
		Dealership:       schedule.Dealership,
		WorkingHours:     schedule.WorkingHours,
		UpcomingBookings: upcoming,
	}, nil
}

func (s *Service) upcomingBookings(ctx context.Context, carID uuid.UUID) ([]models.UpcomingBookingResponse, error) {
	key, cacheable := s.cacheKey(ctx, "GetCarTestDriveInfo", cache.CarUpcomingScope(carID))

	if cacheable {
		var cached []models.UpcomingBookingResponse
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("GetCarTestDriveInfo: cache read failed for car=%s: %v", carID, err)
		}
		if hit {
			return cached, nil
		}
	}

	today := domain.CivilDate(s.timeProvider.Now().In(s.location))
	list, err := s.bookingRepo.GetUpcomingByCar(ctx, carID, today)
	if err != nil {
		s.logger.Error("GetCarTestDriveInfo: failed to get bookings of car=%s: %v", carID, err)
		return nil, fmt.Errorf("%w: GetCarTestDriveInfo - bookings: %v", ErrInternal, err)
	}

	resp := models.FromDomainUpcoming(list)
	if cacheable {
		if err := s.cache.SetJSON(ctx, key, resp); err != nil {
			s.logger.Warn("GetCarTestDriveInfo: cache write failed for car=%s: %v", carID, err)
		}
	}

	return resp, nil
}

// cacheKey возвращает ключ текущего поколения области. Вызывается до запроса в БД.
func (s *Service) cacheKey(ctx context.Context, op, scope string) (string, bool) {
	version, err := s.cache.Version(ctx, scope)
	if err != nil {
		s.logger.Warn("%s: cache version read failed for %s: %v", op, scope, err)
		return "", false
	}
	return cache.VersionedKey(scope, version), true
}

// SetStatus меняет статус бронирования. Только для администратора.
//
// Повторная установка текущего статуса ничего не записывает.
// Из COMPLETED, CANCELLED и NO_SHOW выйти нельзя: ErrAlreadyTerminal.
// Из активных статусов администратор может перевести в любой статус.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, rawStatus string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("SetStatus: booking id=%s, status=%s, user=%s", id, rawStatus, actor.UserID)

	if err := s.requireAdmin("SetStatus", actor); err != nil {
		return nil, err
	}

	target, err := domain.ParseBookingStatus(rawStatus)
	if err != nil {
		s.logger.Warn("SetStatus: invalid status=%q", rawStatus)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	res, err := s.transition(ctx, "SetStatus", id, target, func(b *domain.Booking) error {
		if b.Status == target {
			return errNoChange
		}
		if b.IsTerminal() {
			return ErrAlreadyTerminal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, "SetStatus", res, actor)
	return models.FromDomainBooking(res.booking), nil
}

// Cancel отменяет бронирование по запросу клиента.
// Отменить может владелец бронирования или администратор.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%s, user=%s", id, actor.UserID)

	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	res, err := s.transition(ctx, "Cancel", id, domain.StatusCancelled, func(b *domain.Booking) error {
		if !b.IsOwnedBy(actor.UserID) && !actor.IsAdmin() {
			s.logger.Warn("Cancel: user=%s is not allowed to cancel booking id=%s", actor.UserID, id)
			return ErrForbidden
		}
		if !b.CanBeCancelled() {
			return ErrAlreadyTerminal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, "Cancel", res, actor)
	return models.FromDomainBooking(res.booking), nil
}

// errNoChange прерывает транзакцию без записи, когда статус уже установлен
var errNoChange = errors.New("status unchanged")

// transition выполняет смену статуса в транзакции с блокировкой строки бронирования.
// check вызывается с заблокированной строкой и решает, разрешен ли переход.
func (s *Service) transition(
	ctx context.Context,
	op string,
	id uuid.UUID,
	target domain.BookingStatus,
	check func(b *domain.Booking) error,
) (*transitionResult, error) {
	res := &transitionResult{}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
		}

		res.booking = booking
		res.from = booking.Status

		if err := check(booking); err != nil {
			return err
		}

		updatedAt, err := s.bookingRepo.UpdateStatus(txCtx, id, target)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
		}

		booking.Status = target
		booking.UpdatedAt = updatedAt
		res.changed = true
		return nil
	})

	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, errNoChange):
		s.logger.Info("%s: booking id=%s already has status %s", op, id, target)
		return res, nil
	case errors.Is(err, ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%s not found", op, id)
		return nil, err
	case errors.Is(err, ErrAlreadyTerminal):
		s.logger.Warn("%s: booking id=%s is already %s", op, id, res.from)
		return nil, err
	case errors.Is(err, ErrForbidden):
		return nil, err
	case errors.Is(err, ErrInternal):
		s.logger.Error("%s: %v", op, err)
		return nil, err
	default:
		s.logger.Error("%s: transaction failed for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
	}
}

// afterTransition сбрасывает кэш, публикует событие и считает переход.
// Ошибки только логируются: статус уже сохранен.
func (s *Service) afterTransition(ctx context.Context, op string, res *transitionResult, actor domain.Actor) {
	if !res.changed {
		return
	}

	b := res.booking
	s.logger.Info("%s: booking id=%s %s -> %s", op, b.ID, res.from, b.Status)
	s.metrics.IncStatusTransition(string(res.from), string(b.Status))

	ctx = context.WithoutCancel(ctx)

	if err := s.cache.InvalidateBooking(ctx, b.CarID, b.UserID); err != nil {
		s.metrics.IncCacheInvalidation("error")
		s.logger.Warn("%s: cache invalidation failed for booking id=%s: %v", op, b.ID, err)
	} else {
		s.metrics.IncCacheInvalidation("ok")
	}

	err := s.publisher.PublishStatusChanged(ctx, events.BookingStatusChangedEvent{
		BookingID:  b.ID.String(),
		CarID:      b.CarID.String(),
		UserID:     b.UserID.String(),
		OldStatus:  string(res.from),
		NewStatus:  string(b.Status),
		ChangedBy:  actor.UserID.String(),
		OccurredAt: s.timeProvider.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("%s: failed to publish event for booking id=%s: %v", op, b.ID, err)
	}
}

func (s *Service) requireAdmin(op string, actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthorized
	}
	if !actor.IsAdmin() {
		s.logger.Warn("%s: user=%s is not an admin", op, actor.UserID)
		return ErrForbidden
	}
	return nil
}
