package get_user_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TestDriveService/internal/api/middleware"
	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/internal/service/bookings"
	"github.com/m04kA/SMC-TestDriveService/internal/service/bookings/models"
)

type stubService struct {
	actor domain.Actor
	got   *models.GetUserBookingsRequest
	err   error
}

func (s *stubService) GetUserBookings(_ context.Context, actor domain.Actor, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.actor = actor
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingDetailsResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	user := &domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name       string
		actor      *domain.Actor
		query      string
		svcErr     error
		wantCode   int
		wantStatus string
	}{
		{name: "all", actor: user, wantCode: http.StatusOK},
		{name: "status filter", actor: user, query: "?status=CANCELLED", wantCode: http.StatusOK, wantStatus: "CANCELLED"},
		{name: "anonymous", wantCode: http.StatusUnauthorized},
		{name: "invalid status", actor: user, query: "?status=cancelled", svcErr: bookings.ErrInvalidStatus, wantCode: http.StatusBadRequest, wantStatus: "cancelled"},
		{name: "internal", actor: user, svcErr: bookings.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.svcErr}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me/test-drives"+tt.query, nil)
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.actor == nil {
				assert.Nil(t, svc.got)
				return
			}
			assert.Equal(t, tt.actor.UserID, svc.actor.UserID)
			if tt.wantStatus == "" {
				assert.Nil(t, svc.got.Status)
			} else {
				require.NotNil(t, svc.got.Status)
				assert.Equal(t, tt.wantStatus, *svc.got.Status)
			}
		})
	}
}
