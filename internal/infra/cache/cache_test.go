package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, time.Minute, "testdrive:invalidate", nopLogger{}), mr, rdb
}

type payload struct {
	IDs []string `json:"ids"`
}

func TestCache_SetGetJSON(t *testing.T) {
	c, mr, _ := newTestCache(t)
	ctx := context.Background()
	key := VersionedKey(UserBookingsScope(uuid.New()), 0)

	var got payload
	hit, err := c.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, key, payload{IDs: []string{"a", "b"}}))
	assert.Equal(t, time.Minute, mr.TTL(key))

	hit, err = c.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got.IDs)
}

func TestCache_CorruptValueIsMiss(t *testing.T) {
	c, mr, _ := newTestCache(t)
	key := VersionedKey(CarUpcomingScope(uuid.New()), 0)
	require.NoError(t, mr.Set(key, "{not json"))

	var got payload
	hit, err := c.GetJSON(context.Background(), key, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists(key))
}

func TestCache_InvalidateBooking(t *testing.T) {
	c, _, rdb := newTestCache(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	carID, userID := uuid.New(), uuid.New()
	carScope, userScope := CarUpcomingScope(carID), UserBookingsScope(userID)

	sub := rdb.Subscribe(ctx, "testdrive:invalidate")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, c.InvalidateBooking(ctx, carID, userID))

	carVersion, err := c.Version(ctx, carScope)
	require.NoError(t, err)
	assert.Equal(t, int64(1), carVersion)
	userVersion, err := c.Version(ctx, userScope)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userVersion)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var inv InvalidationMessage
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &inv))
	assert.Equal(t, carID.String(), inv.CarID)
	assert.Equal(t, userID.String(), inv.UserID)
}

func TestCache_WriteAfterInvalidationIsNotVisible(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()
	carID, userID := uuid.New(), uuid.New()
	scope := UserBookingsScope(userID)

	// читатель получил поколение и ушел в БД
	version, err := c.Version(ctx, scope)
	require.NoError(t, err)

	// тем временем бронирование изменилось
	require.NoError(t, c.InvalidateBooking(ctx, carID, userID))

	// читатель сохраняет устаревший список
	require.NoError(t, c.SetJSON(ctx, VersionedKey(scope, version), payload{IDs: []string{"stale"}}))

	current, err := c.Version(ctx, scope)
	require.NoError(t, err)
	assert.NotEqual(t, version, current)

	var got payload
	hit, err := c.GetJSON(ctx, VersionedKey(scope, current), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_VersionRedisDown(t *testing.T) {
	c, mr, _ := newTestCache(t)
	mr.Close()

	_, err := c.Version(context.Background(), UserBookingsScope(uuid.New()))
	assert.ErrorIs(t, err, ErrCache)
}

func TestCache_NilIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	version, err := c.Version(ctx, "k")
	assert.NoError(t, err)
	assert.Zero(t, version)

	hit, err := c.GetJSON(ctx, "k", &payload{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.SetJSON(ctx, "k", payload{}))
	assert.NoError(t, c.InvalidateBooking(ctx, uuid.New(), uuid.New()))
}
