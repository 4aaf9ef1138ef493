package models

import "github.com/m04kA/SMC-TestDriveService/internal/domain"

// CarsResponse количество автомобилей по статусам
type CarsResponse struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Sold        int `json:"sold"`
	Unavailable int `json:"unavailable"`
	Featured    int `json:"featured"`
}

// TestDrivesResponse количество тест-драйвов по статусам
type TestDrivesResponse struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	Confirmed      int     `json:"confirmed"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	NoShow         int     `json:"noShow"`
	ConversionRate float64 `json:"conversionRate"`
}

// DashboardResponse сводка админской панели
type DashboardResponse struct {
	Cars       CarsResponse       `json:"cars"`
	TestDrives TestDrivesResponse `json:"testDrives"`
}

// FromDomainStats конвертирует domain модель в DTO
func FromDomainStats(s domain.DashboardStats) *DashboardResponse {
	return &DashboardResponse{
		Cars: CarsResponse{
			Total:       s.Cars.Total,
			Available:   s.Cars.Available,
			Sold:        s.Cars.Sold,
			Unavailable: s.Cars.Unavailable,
			Featured:    s.Cars.Featured,
		},
		TestDrives: TestDrivesResponse{
			Total:          s.TestDrives.Total,
			Pending:        s.TestDrives.Pending,
			Confirmed:      s.TestDrives.Confirmed,
			Completed:      s.TestDrives.Completed,
			Cancelled:      s.TestDrives.Cancelled,
			NoShow:         s.TestDrives.NoShow,
			ConversionRate: s.TestDrives.ConversionRate,
		},
	}
}
