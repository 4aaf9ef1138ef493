package get_admin_bookings

import (
	"net/url"

	"github.com/m04kA/SMC-TestDriveService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров search и status
func ToServiceRequest(query url.Values) *models.GetAdminBookingsRequest {
	req := &models.GetAdminBookingsRequest{
		Search: query.Get("search"),
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	return req
}
