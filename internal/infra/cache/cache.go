// Package cache хранит в Redis производные списки бронирований и рассылает сигнал инвалидации.
//
// Каждый список живет в области (scope) с номером поколения. Значения пишутся под ключом
// текущего поколения, инвалидация увеличивает поколение. Запись, прочитанная из БД до
// инвалидации, попадает под старый ключ, который больше никто не читает.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "testdrive"

var (
	// ErrCache возвращается при ошибках обращения к Redis
	ErrCache = errors.New("cache: redis error")
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache обертка над Redis. Нулевой *Cache (Redis выключен) ведет себя как всегда пустой кэш.
type Cache struct {
	rdb     *redis.Client
	ttl     time.Duration
	channel string
	logger  Logger
}

// InvalidationMessage публикуется в канал после каждой мутации бронирования
type InvalidationMessage struct {
	CarID  string `json:"carId"`
	UserID string `json:"userId"`
}

// New создает кэш поверх готового клиента Redis
func New(rdb *redis.Client, ttl time.Duration, channel string, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl, channel: channel, logger: logger}
}

// UserBookingsScope область списка бронирований клиента
func UserBookingsScope(userID uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s:bookings", keyPrefix, userID)
}

// CarUpcomingScope область списка ближайших активных бронирований автомобиля
func CarUpcomingScope(carID uuid.UUID) string {
	return fmt.Sprintf("%s:car:%s:upcoming", keyPrefix, carID)
}

// VersionedKey ключ значения области scope в поколении version
func VersionedKey(scope string, version int64) string {
	return fmt.Sprintf("%s:v%d", scope, version)
}

func versionKey(scope string) string {
	return scope + ":version"
}

// Version возвращает текущее поколение области. Поколение читается до обращения к БД.
func (c *Cache) Version(ctx context.Context, scope string) (int64, error) {
	if c == nil || c.rdb == nil {
		return 0, nil
	}

	v, err := c.rdb.Get(ctx, versionKey(scope)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: version %s: %v", ErrCache, scope, err)
	}

	return v, nil
}

// GetJSON читает значение и декодирует его в dest. Возвращает false при промахе.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}

	bs, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	if err := json.Unmarshal(bs, dest); err != nil {
		// битое значение считаем промахом и удаляем
		if c.logger != nil {
			c.logger.Warn("Cache: corrupt value key=%s: %v", key, err)
		}
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}

	return true, nil
}

// SetJSON сохраняет значение с TTL кэша
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	bs, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrCache, key, err)
	}

	if err := c.rdb.Set(ctx, key, bs, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}

	return nil
}

// InvalidateBooking сдвигает поколения списков автомобиля и клиента
// и публикует сообщение в канал инвалидации
func (c *Cache) InvalidateBooking(ctx context.Context, carID, userID uuid.UUID) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	msg, err := json.Marshal(InvalidationMessage{CarID: carID.String(), UserID: userID.String()})
	if err != nil {
		return fmt.Errorf("%w: marshal invalidation: %v", ErrCache, err)
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(CarUpcomingScope(carID)))
		pipe.Incr(ctx, versionKey(UserBookingsScope(userID)))
		if c.channel != "" {
			pipe.Publish(ctx, c.channel, msg)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalidate car=%s user=%s: %v", ErrCache, carID, userID, err)
	}

	return nil
}
