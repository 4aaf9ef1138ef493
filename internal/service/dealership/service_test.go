package dealership

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	dealershipRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/dealership"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
)

type fakeRepo struct {
	dealership *domain.Dealership
	getErr     error
	saved      []domain.WorkingHours
	saveErr    error
}

func (f *fakeRepo) GetDealership(_ context.Context) (*domain.Dealership, error) {
	return f.dealership, f.getErr
}

func (f *fakeRepo) ReplaceWorkingHours(_ context.Context, _ uuid.UUID, schedule []domain.WorkingHours) error {
	f.saved = schedule
	return f.saveErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var admin = domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

func fullWeek() *models.UpdateWorkingHoursRequest {
	req := &models.UpdateWorkingHoursRequest{}
	for _, day := range domain.AllDays {
		item := models.WorkingHoursRequest{DayOfWeek: string(day), IsOpen: true, OpenTime: "8:00", CloseTime: "20:00"}
		if day == domain.Sunday {
			item = models.WorkingHoursRequest{DayOfWeek: "sunday"}
		}
		req.WorkingHours = append(req.WorkingHours, item)
	}
	return req
}

func TestGetSchedule_DefaultWhenNotConfigured(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: dealershipRepo.ErrDealershipNotFound}, nopLogger{})

	resp, err := svc.GetSchedule(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Nil(t, resp.Dealership)
	require.Len(t, resp.WorkingHours, 7)
	assert.Equal(t, "MONDAY", resp.WorkingHours[0].DayOfWeek)
	assert.Equal(t, "09:00", resp.WorkingHours[0].OpenTime)
	assert.False(t, resp.WorkingHours[6].IsOpen)
}

func TestGetSchedule_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: errors.New("db down")}, nopLogger{})

	_, err := svc.GetSchedule(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateWorkingHours(t *testing.T) {
	repo := &fakeRepo{dealership: &domain.Dealership{ID: uuid.New(), Name: "Downtown Motors"}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdateWorkingHours(context.Background(), admin, fullWeek())
	require.NoError(t, err)

	require.Len(t, repo.saved, 7)
	assert.Equal(t, "08:00", repo.saved[0].OpenTime.String())
	assert.False(t, resp.IsDefault)
	assert.Equal(t, "Downtown Motors", resp.Dealership.Name)
	assert.Equal(t, "SUNDAY", resp.WorkingHours[6].DayOfWeek)
}

func TestUpdateWorkingHours_Errors(t *testing.T) {
	t.Run("not admin", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, nopLogger{})
		_, err := svc.UpdateWorkingHours(context.Background(), domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}, fullWeek())
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, nopLogger{})
		_, err := svc.UpdateWorkingHours(context.Background(), domain.Actor{}, fullWeek())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("six days", func(t *testing.T) {
		repo := &fakeRepo{dealership: &domain.Dealership{ID: uuid.New()}}
		req := fullWeek()
		req.WorkingHours = req.WorkingHours[:6]

		_, err := NewService(repo, nopLogger{}).UpdateWorkingHours(context.Background(), admin, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, repo.saved)
	})

	t.Run("duplicate day", func(t *testing.T) {
		req := fullWeek()
		req.WorkingHours[1].DayOfWeek = "MONDAY"
		_, err := NewService(&fakeRepo{}, nopLogger{}).UpdateWorkingHours(context.Background(), admin, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("close before open", func(t *testing.T) {
		req := fullWeek()
		req.WorkingHours[2].CloseTime = "07:00"
		_, err := NewService(&fakeRepo{}, nopLogger{}).UpdateWorkingHours(context.Background(), admin, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no dealership", func(t *testing.T) {
		repo := &fakeRepo{getErr: dealershipRepo.ErrDealershipNotFound}
		_, err := NewService(repo, nopLogger{}).UpdateWorkingHours(context.Background(), admin, fullWeek())
		assert.ErrorIs(t, err, ErrDealershipNotFound)
	})
}
