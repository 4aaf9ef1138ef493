package update_working_hours

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TestDriveService/internal/api/middleware"
	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
)

type stubService struct {
	got *models.UpdateWorkingHoursRequest
	err error
}

func (s *stubService) UpdateWorkingHours(_ context.Context, _ domain.Actor, req *models.UpdateWorkingHoursRequest) (*models.ScheduleResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ScheduleResponse{}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{"workingHours":[{"dayOfWeek":"MONDAY","isOpen":true,"openTime":"09:00","closeTime":"18:00"}]}`

func TestHandle(t *testing.T) {
	admin := &domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name     string
		actor    *domain.Actor
		body     string
		svcErr   error
		wantCode int
	}{
		{name: "ok", actor: admin, body: body, wantCode: http.StatusOK},
		{name: "anonymous", body: body, wantCode: http.StatusUnauthorized},
		{name: "broken json", actor: admin, body: `{"workingHours":`, wantCode: http.StatusBadRequest},
		{name: "unknown field", actor: admin, body: `{"hours":[]}`, wantCode: http.StatusBadRequest},
		{name: "invalid schedule", actor: admin, body: body, svcErr: dealership.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "no dealership", actor: admin, body: body, svcErr: dealership.ErrDealershipNotFound, wantCode: http.StatusNotFound},
		{name: "not admin", actor: admin, body: body, svcErr: dealership.ErrForbidden, wantCode: http.StatusForbidden},
		{name: "internal", actor: admin, body: body, svcErr: dealership.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.svcErr}
			req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/dealership/working-hours", strings.NewReader(tt.body))
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.name == "ok" {
				require.NotNil(t, svc.got)
				require.Len(t, svc.got.WorkingHours, 1)
				assert.Equal(t, "MONDAY", svc.got.WorkingHours[0].DayOfWeek)
			}
		})
	}
}
