package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

type fakeCars struct {
	stats domain.CarStats
	err   error
}

func (f fakeCars) CountStats(context.Context) (domain.CarStats, error) { return f.stats, f.err }

type fakeBookings struct {
	counts    map[domain.BookingStatus]int
	sold      int
	soldCalls int
}

func (f *fakeBookings) CountByStatus(context.Context) (map[domain.BookingStatus]int, error) {
	return f.counts, nil
}

func (f *fakeBookings) CountSoldCarsWithCompletedDrive(context.Context) (int, error) {
	f.soldCalls++
	return f.sold, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var admin = domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

func TestGet(t *testing.T) {
	bookings := &fakeBookings{
		counts: map[domain.BookingStatus]int{
			domain.StatusPending:   2,
			domain.StatusConfirmed: 1,
			domain.StatusCompleted: 3,
			domain.StatusCancelled: 4,
		},
		sold: 1,
	}
	cars := fakeCars{stats: domain.CarStats{Total: 10, Available: 7, Sold: 2, Unavailable: 1, Featured: 3}}

	resp, err := NewService(cars, bookings, nopLogger{}).Get(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, 10, resp.Cars.Total)
	assert.Equal(t, 3, resp.Cars.Featured)
	assert.Equal(t, 10, resp.TestDrives.Total)
	assert.Equal(t, 0, resp.TestDrives.NoShow)
	assert.Equal(t, 33.33, resp.TestDrives.ConversionRate)
}

func TestGet_NoCompletedDrives(t *testing.T) {
	bookings := &fakeBookings{counts: map[domain.BookingStatus]int{domain.StatusPending: 5}}

	resp, err := NewService(fakeCars{}, bookings, nopLogger{}).Get(context.Background(), admin)
	require.NoError(t, err)
	assert.Zero(t, resp.TestDrives.ConversionRate)
	assert.Zero(t, bookings.soldCalls)
}

func TestGet_Errors(t *testing.T) {
	svc := NewService(fakeCars{}, &fakeBookings{}, nopLogger{})

	_, err := svc.Get(context.Background(), domain.Actor{UserID: uuid.New(), Role: domain.RoleUser})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(context.Background(), domain.Actor{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = NewService(fakeCars{err: errors.New("timeout")}, &fakeBookings{}, nopLogger{}).Get(context.Background(), admin)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 0.0, ConversionRate(0, 0))
	assert.Equal(t, 50.0, ConversionRate(1, 2))
	assert.Equal(t, 66.67, ConversionRate(2, 3))
	assert.Equal(t, 100.0, ConversionRate(4, 4))
}
