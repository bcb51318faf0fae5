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

	cancelBookingHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/create_booking"
	findAlternativesHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/find_alternatives"
	getAvailableSlotsHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/get_booking"
	getResourceBookingsHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/get_resource_bookings"
	getScheduleConfigHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/get_schedule_config"
	getSubjectBookingsHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/get_subject_bookings"
	rescheduleBookingHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/update_booking_status"
	updateScheduleConfigHandler "github.com/m04kA/PMS-SchedulingService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/PMS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/PMS-SchedulingService/internal/config"
	"github.com/m04kA/PMS-SchedulingService/internal/datetime"
	bookingRepo "github.com/m04kA/PMS-SchedulingService/internal/infra/storage/booking"
	schedConfigRepo "github.com/m04kA/PMS-SchedulingService/internal/infra/storage/schedconfig"
	identityServiceClient "github.com/m04kA/PMS-SchedulingService/internal/integrations/identityservice"
	availabilityService "github.com/m04kA/PMS-SchedulingService/internal/service/availability"
	bookingsService "github.com/m04kA/PMS-SchedulingService/internal/service/bookings"
	schedConfigService "github.com/m04kA/PMS-SchedulingService/internal/service/schedconfig"
	checkAvailabilityUC "github.com/m04kA/PMS-SchedulingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/PMS-SchedulingService/internal/usecase/create_booking"
	findAlternativesUC "github.com/m04kA/PMS-SchedulingService/internal/usecase/find_alternatives"
	getAvailableSlotsUC "github.com/m04kA/PMS-SchedulingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/PMS-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/PMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PMS-SchedulingService/pkg/logger"
	"github.com/m04kA/PMS-SchedulingService/pkg/metrics"
	"github.com/m04kA/PMS-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/PMS-SchedulingService/pkg/txmanager"
)

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

	log.Info("Starting PMS-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочий календарь и справочник типов приёмов из конфигурации
	calendar, err := cfg.BusinessCalendar()
	if err != nil {
		log.Fatal("Failed to build business calendar: %v", err)
	}
	typeCatalog := cfg.TypeCatalog()
	log.Info("Business calendar loaded (timezone=%s, holidays=%d, appointment types=%d)",
		cfg.Calendar.Timezone, len(calendar.Holidays), len(typeCatalog))

	// Распознаватель дат и времени работает в таймзоне календаря
	resolver := datetime.NewResolver(calendar.Location, cfg.Scheduling.SlotGranularityMinutes)

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

	// Клиент сервиса идентификации пациентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Identity service client initialized (url=%s, timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		schedConfigRepository *schedConfigRepo.Repository
	)

	// TODO: вынести общий интерфейс транзакционных менеджеров в pkg
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		schedConfigRepository = schedConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		schedConfigRepository = schedConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	schedConfigSvc := schedConfigService.NewService(
		schedConfigRepository,
		cfg.GlobalScheduleConfig(),
		log,
	)
	availabilityCalc := availabilityService.NewCalculator(
		bookingRepository,
		schedConfigSvc,
		calendar,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	findAlternativesUseCase := findAlternativesUC.NewUseCase(
		availabilityCalc,
		schedConfigSvc,
		calendar,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		availabilityCalc,
		resolver,
		calendar,
		typeCatalog,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityCalc,
		schedConfigSvc,
		resolver,
		calendar,
		typeCatalog,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityCalc,
		findAlternativesUseCase,
		identityClient,
		resolver,
		calendar,
		typeCatalog,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilityCalc,
		findAlternativesUseCase,
		resolver,
		calendar,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	findAlternatives := findAlternativesHandler.NewHandler(findAlternativesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getSubjectBookings := getSubjectBookingsHandler.NewHandler(bookingSvc, log)
	getResourceBookings := getResourceBookingsHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(schedConfigSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(schedConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности интервала
	api.HandleFunc("/resources/{resourceId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Доступные слоты на день
	api.HandleFunc("/resources/{resourceId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Альтернативные слоты рядом с желаемым временем
	api.HandleFunc("/resources/{resourceId}/alternatives",
		findAlternatives.Handle).Methods(http.MethodGet)

	// Действующая конфигурация расчёта слотов
	api.HandleFunc("/resources/{resourceId}/schedule-config",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID или коду подтверждения
	protected.HandleFunc("/bookings/{identifier}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{identifier}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на новое время
	protected.HandleFunc("/bookings/{identifier}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Отметка исхода приёма (completed / no_show)
	protected.HandleFunc("/bookings/{identifier}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пациента
	protected.HandleFunc("/subjects/{subjectId}/bookings", getSubjectBookings.Handle).Methods(http.MethodGet)

	// --- Управление ресурсами ---
	// Список бронирований ресурса
	protected.HandleFunc("/resources/{resourceId}/bookings", getResourceBookings.Handle).Methods(http.MethodGet)

	// Обновление конфигурации расчёта слотов ресурса
	protected.HandleFunc("/resources/{resourceId}/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

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
