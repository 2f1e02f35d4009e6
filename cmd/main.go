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

	addBlockHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/add_block"
	createBookingHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/get_admin_bookings"
	getAvailableDatesHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/get_available_dates"
	getAvailableTimesHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/get_available_times"
	listServicesHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/list_services"
	manageBookingHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/manage_booking"
	removeBlockHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/remove_block"
	setOpenHoursHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/set_open_hours"
	syncCalendarHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/sync_calendar"
	"github.com/m04kA/SLN-BookingService/internal/api/middleware"
	"github.com/m04kA/SLN-BookingService/internal/config"
	"github.com/m04kA/SLN-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/service"
	"github.com/m04kA/SLN-BookingService/internal/integrations/googlecalendar"
	availabilityService "github.com/m04kA/SLN-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SLN-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SLN-BookingService/internal/service/catalog"
	createBookingUC "github.com/m04kA/SLN-BookingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SLN-BookingService/internal/usecase/get_available_dates"
	getAvailableTimesUC "github.com/m04kA/SLN-BookingService/internal/usecase/get_available_times"
	syncCalendarUC "github.com/m04kA/SLN-BookingService/internal/usecase/sync_calendar"
	"github.com/m04kA/SLN-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SLN-BookingService/pkg/logger"
	"github.com/m04kA/SLN-BookingService/pkg/metrics"
	"github.com/m04kA/SLN-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SLN-BookingService/pkg/txmanager"
)

// calendarBridge объединяет операции клиента календаря, которые нужны сервисам
// Реализуется боевым клиентом и заглушкой Disabled
type calendarBridge interface {
	PushEvent(ctx context.Context, booking *domain.Booking) (string, error)
	RemoveEvent(ctx context.Context, eventID string) error
	ListEventIDs(ctx context.Context, from, to time.Time) (map[string]struct{}, error)
}

// txManager объединяет режимы транзакций, которые нужны сервисам и usecases
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SLN-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс бизнеса: все даты и времена интерпретируются в нем
	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Business timezone: %s", loc)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент внешнего календаря
	var calendarClient calendarBridge
	if cfg.GoogleCalendar.Enabled {
		calendarClient, err = googlecalendar.NewClient(
			context.Background(),
			cfg.GoogleCalendar.CredentialsFile,
			cfg.GoogleCalendar.CalendarID,
			time.Duration(cfg.GoogleCalendar.Timeout)*time.Second,
			loc,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize Google Calendar client: %v", err)
		}
		log.Info("Google Calendar sync enabled (calendar=%s, timeout=%ds)",
			cfg.GoogleCalendar.CalendarID, cfg.GoogleCalendar.Timeout)
	} else {
		calendarClient = googlecalendar.NewDisabled()
		log.Info("Google Calendar sync disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		serviceRepository      *serviceRepo.Repository
		txMgr                  txManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, calendarClient, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, txMgr, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)

	// Инициализируем use cases
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		serviceRepository,
		availabilitySvc,
		bookingRepository,
		log,
		loc,
		cfg.Booking.SlotStepMinutes,
		cfg.Booking.MinBookingNoticeMinutes,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		serviceRepository,
		availabilitySvc,
		bookingRepository,
		log,
		loc,
		cfg.Booking.SlotStepMinutes,
		cfg.Booking.MinBookingNoticeMinutes,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		availabilitySvc,
		calendarClient,
		txMgr,
		log,
		loc,
		cfg.Booking.SlotStepMinutes,
		cfg.Booking.MinBookingNoticeMinutes,
	)

	syncCalendarUseCase := syncCalendarUC.NewUseCase(bookingRepository, calendarClient, log, loc)

	// Инициализируем handlers
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	manageBooking := manageBookingHandler.NewHandler(bookingSvc, log)
	setOpenHours := setOpenHoursHandler.NewHandler(availabilitySvc, log)
	addBlock := addBlockHandler.NewHandler(availabilitySvc, log)
	removeBlock := removeBlockHandler.NewHandler(availabilitySvc, log)
	syncCalendar := syncCalendarHandler.NewHandler(syncCalendarUseCase, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Даты периода, на которых есть хотя бы один слот
	api.HandleFunc("/availability/dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// Доступные времена начала на дату
	api.HandleFunc("/availability", getAvailableTimes.Handle).Methods(http.MethodGet)

	// Каталог услуг и дополнений
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Самостоятельное управление бронированием по токену из письма
	api.HandleFunc("/bookings/manage", manageBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken, log))

	// Рабочие часы на дату
	admin.HandleFunc("/availability", setOpenHours.Handle).Methods(http.MethodPost)

	// Блокировки времени
	admin.HandleFunc("/availability/block", addBlock.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/availability/unblock/{id}", removeBlock.Handle).Methods(http.MethodDelete)

	// Пакетная сверка с внешним календарем
	admin.HandleFunc("/availability/sync", syncCalendar.Handle).Methods(http.MethodPost)

	// Список бронирований для административной панели
	admin.HandleFunc("/admin/bookings", getAdminBookings.Handle).Methods(http.MethodGet)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
