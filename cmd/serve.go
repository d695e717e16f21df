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
	"github.com/spf13/cobra"

	cancelAppointmentHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/cancel_appointment"
	cancelLeaveHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/cancel_leave_request"
	createAppointmentHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/create_appointment"
	createLeaveHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/create_leave_request"
	getAppointmentHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/get_available_slots"
	getDoctorAppointmentsHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/get_doctor_appointments"
	getDoctorScheduleHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/get_doctor_schedule"
	listDoctorLeavesHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/list_doctor_leave_requests"
	listPendingLeavesHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/list_pending_leave_requests"
	reviewLeaveHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/review_leave_request"
	updateAppointmentStatusHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/update_appointment_status"
	updateDoctorScheduleHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/update_doctor_schedule"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/config"
	slotsCache "github.com/m04kA/HMS-AppointmentService/internal/infra/cache/slots"
	appointmentRepo "github.com/m04kA/HMS-AppointmentService/internal/infra/storage/appointment"
	leaveRepo "github.com/m04kA/HMS-AppointmentService/internal/infra/storage/leave"
	scheduleRepo "github.com/m04kA/HMS-AppointmentService/internal/infra/storage/schedule"
	registryClient "github.com/m04kA/HMS-AppointmentService/internal/integrations/registry"
	appointmentsService "github.com/m04kA/HMS-AppointmentService/internal/service/appointments"
	leavesService "github.com/m04kA/HMS-AppointmentService/internal/service/leaves"
	scheduleService "github.com/m04kA/HMS-AppointmentService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/HMS-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/HMS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
	"github.com/m04kA/HMS-AppointmentService/pkg/metrics"
	"github.com/m04kA/HMS-AppointmentService/pkg/txmanager"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the appointment API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "config.toml", "path to TOML config")

	return cmd
}

func runServer(configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting HMS-AppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	openTime, closeTime, err := cfg.Scheduling.StandardHours()
	if err != nil {
		return err
	}
	location, err := cfg.Scheduling.Location()
	if err != nil {
		return err
	}

	// Инициализируем метрики (если включены). nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database")

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	leaveRepository := leaveRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Кэш слотов (без redis работает как всегда пустой)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	cache := slotsCache.NewCache(redisClient, cfg.Scheduling.SlotsCacheTTL())
	defer cache.Close()

	if cfg.Redis.Enabled() {
		if err := cache.Ping(pingCtx); err != nil {
			log.Warn("Redis is unavailable at %s, slots cache will miss: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Slots cache connected to redis at %s", cfg.Redis.Addr)
		}
	}

	// Инициализируем клиент реестра персонала
	registry := registryClient.NewClient(
		cfg.Registry.URL,
		time.Duration(cfg.Registry.Timeout)*time.Second,
		log,
	)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, cache, txMgr, log)
	leaveSvc := leavesService.NewService(leaveRepository, appointmentRepository, cache, txMgr, location, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, registry, cache, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		leaveRepository,
		scheduleRepository,
		registry,
		cache,
		metricsCollector,
		getAvailableSlotsUC.Settings{
			StandardOpenTime:   openTime,
			StandardCloseTime:  closeTime,
			SlotGranularity:    cfg.Scheduling.SlotGranularity(),
			AdvanceBookingDays: cfg.Scheduling.AdvanceBookingDays,
			Location:           location,
		},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		leaveRepository,
		scheduleRepository,
		registry,
		cache,
		txMgr,
		createAppointmentUC.Settings{
			StandardOpenTime:   openTime,
			StandardCloseTime:  closeTime,
			AdvanceBookingDays: cfg.Scheduling.AdvanceBookingDays,
			Location:           location,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getDoctorAppointments := getDoctorAppointmentsHandler.NewHandler(appointmentSvc, log)
	createLeave := createLeaveHandler.NewHandler(leaveSvc, log)
	listDoctorLeaves := listDoctorLeavesHandler.NewHandler(leaveSvc, log)
	listPendingLeaves := listPendingLeavesHandler.NewHandler(leaveSvc, log)
	reviewLeave := reviewLeaveHandler.NewHandler(leaveSvc, log)
	cancelLeave := cancelLeaveHandler.NewHandler(leaveSvc, log)
	getDoctorSchedule := getDoctorScheduleHandler.NewHandler(scheduleSvc, log)
	updateDoctorSchedule := updateDoctorScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты врача на дату
	api.HandleFunc("/doctors/{doctorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание врача
	api.HandleFunc("/doctors/{doctorId}/schedule", getDoctorSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание ---
	protected.HandleFunc("/doctors/{doctorId}/schedule/{dayOfWeek}", updateDoctorSchedule.Handle).Methods(http.MethodPut)

	// --- Записи на прием ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/doctors/{doctorId}/appointments", getDoctorAppointments.Handle).Methods(http.MethodGet)

	// --- Заявки на отпуск ---
	// /pending регистрируется раньше маршрутов с {leaveId}
	protected.HandleFunc("/leave-requests/pending", listPendingLeaves.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/leave-requests", createLeave.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/leave-requests/{leaveId}/review", reviewLeave.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/leave-requests/{leaveId}/cancel", cancelLeave.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/doctors/{doctorId}/leave-requests", listDoctorLeaves.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		close(stopMetricsCh)
		return fmt.Errorf("server failed to start: %w", err)
	}

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited")
	return nil
}
