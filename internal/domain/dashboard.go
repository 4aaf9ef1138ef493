package domain

// CarStats количество автомобилей каталога по статусам
type CarStats struct {
	Total       int
	Available   int
	Sold        int
	Unavailable int
	Featured    int
}

// TestDriveStats количество тест-драйвов по статусам
type TestDriveStats struct {
	Total          int
	Pending        int
	Confirmed      int
	Completed      int
	Cancelled      int
	NoShow         int
	ConversionRate float64 // проценты, два знака после запятой
}

// DashboardStats сводка для админской панели
type DashboardStats struct {
	Cars       CarStats
	TestDrives TestDriveStats
}
