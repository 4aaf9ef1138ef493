package get_dealership_schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
)

type stubService struct {
	resp *models.ScheduleResponse
	err  error
}

func (s *stubService) GetSchedule(_ context.Context) (*models.ScheduleResponse, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	svc := &stubService{resp: &models.ScheduleResponse{
		WorkingHours: []models.WorkingHoursResponse{{DayOfWeek: "MONDAY", IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}},
		IsDefault:    true,
	}}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dealership/schedule", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Success bool                    `json:"success"`
		Data    models.ScheduleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.True(t, env.Data.IsDefault)
	assert.Nil(t, env.Data.Dealership)
	require.Len(t, env.Data.WorkingHours, 1)
	assert.Equal(t, "09:00", env.Data.WorkingHours[0].OpenTime)
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHandler(&stubService{err: errors.New("db down")}, nopLogger{}).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dealership/schedule", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
