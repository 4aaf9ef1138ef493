package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	cancelBookingHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/get_admin_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/get_booking"
	getDashboardHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/get_dashboard"
	getDealershipScheduleHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/get_dealership_schedule"
	getTestDriveInfoHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/get_test_drive_info"
	getUserBookingsHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/update_booking_status"
	updateWorkingHoursHandler "github.com/m04kA/SMC-TestDriveService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/SMC-TestDriveService/internal/api/middleware"
	"github.com/m04kA/SMC-TestDriveService/internal/config"
	"github.com/m04kA/SMC-TestDriveService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/car"
	dealershipRepo "github.com/m04kA/SMC-TestDriveService/internal/infra/storage/dealership"
	"github.com/m04kA/SMC-TestDriveService/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-TestDriveService/internal/service/bookings"
	dashboardService "github.com/m04kA/SMC-TestDriveService/internal/service/dashboard"
	dealershipService "github.com/m04kA/SMC-TestDriveService/internal/service/dealership"
	createBookingUC "github.com/m04kA/SMC-TestDriveService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TestDriveService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TestDriveService/pkg/logger"
	"github.com/m04kA/SMC-TestDriveService/pkg/metrics"
	"github.com/m04kA/SMC-TestDriveService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TestDriveService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Метрики (nil, если выключены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	metricsCollector.RegisterDB(db, cfg.Database.DBName)

	// gorm работает поверх того же пула соединений
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal("Failed to initialize gorm: %v", err)
	}

	// Redis кэш (nil, если выключен)
	var bookingCache *cache.Cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable at %s, cache requests will fail softly: %v", cfg.Redis.Addr, err)
		}
		cancel()

		bookingCache = cache.New(rdb, cfg.Cache.TTLDuration(), cfg.Redis.Channel, log)
		log.Info("Redis cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Cache.TTLDuration())
	}

	// Публикация событий (nil, если RabbitMQ выключен)
	var publisher *events.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher = events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.PublishTimeoutDuration(), log)
		defer publisher.Close()
		log.Info("RabbitMQ publisher enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
	}

	// Репозитории
	txMgr := txmanager.NewTransactionManager(db)
	bookingRepository := bookingRepo.NewRepository(db)
	carRepository := carRepo.NewRepository(db)
	dealershipRepository := dealershipRepo.NewRepository(gormDB)

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		carRepository,
		dealershipRepository,
		txMgr,
		bookingCache,
		publisher,
		metricsCollector,
		location,
		log,
	)
	dealershipSvc := dealershipService.NewService(dealershipRepository, log)
	dashboardSvc := dashboardService.NewService(carRepository, bookingRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		carRepository,
		dealershipRepository,
		txMgr,
		bookingCache,
		publisher,
		metricsCollector,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		carRepository,
		bookingRepository,
		dealershipRepository,
		location,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getTestDriveInfo := getTestDriveInfoHandler.NewHandler(bookingSvc, log)
	getDealershipSchedule := getDealershipScheduleHandler.NewHandler(dealershipSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(dealershipSvc, log)
	getDashboard := getDashboardHandler.NewHandler(dashboardSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/cars/{carId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId}/test-drive-info", getTestDriveInfo.Handle).Methods(http.MethodGet)
	api.HandleFunc("/dealership/schedule", getDealershipSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT)
	// ============================================================

	auth := middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth)

	protected.HandleFunc("/test-drives", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/test-drives/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/test-drives/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/test-drives", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Админка ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth, middleware.RequireAdmin)

	admin.HandleFunc("/test-drives", getAdminBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/test-drives/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/dealership/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
