package main

import (
	"context"
	"database/sql"
	"errors"
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

	checkSlotHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/check_slot_availability"
	createAppointmentHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/create_appointment"
	getAvailableSlotsHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/get_available_slots"
	healthHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/health"
	listAppointmentsHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/list_appointments"
	listBookedSlotsHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/list_booked_slots"
	listNotificationsHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/list_notifications"
	markReadHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/mark_notification_read"
	streamHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/stream_notifications"
	updateStatusHandler "github.com/iglimehmetaj/service-platform2/internal/api/handlers/update_appointment_status"
	"github.com/iglimehmetaj/service-platform2/internal/api/middleware"
	"github.com/iglimehmetaj/service-platform2/internal/config"
	"github.com/iglimehmetaj/service-platform2/internal/infra/realtime"
	appointmentRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/appointment"
	catalogRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/catalog"
	notificationRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/notification"
	userRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/user"
	appointmentsService "github.com/iglimehmetaj/service-platform2/internal/service/appointments"
	notificationsService "github.com/iglimehmetaj/service-platform2/internal/service/notifications"
	createAppointmentUC "github.com/iglimehmetaj/service-platform2/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/iglimehmetaj/service-platform2/internal/usecase/get_available_slots"
	updateStatusUC "github.com/iglimehmetaj/service-platform2/internal/usecase/update_appointment_status"
	"github.com/iglimehmetaj/service-platform2/pkg/dbmetrics"
	"github.com/iglimehmetaj/service-platform2/pkg/jwt"
	"github.com/iglimehmetaj/service-platform2/pkg/logger"
	"github.com/iglimehmetaj/service-platform2/pkg/metrics"
	"github.com/iglimehmetaj/service-platform2/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting service-platform booking core...")

	// nil when disabled; every Metrics method is nil-safe
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Postgres
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Booking.SerializableRetries)

	// Redis for real-time delivery
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	bus := realtime.NewRedisBus(redisClient, log)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := bus.Ping(pingCtx); err != nil {
		// Notifications still persist; pushes fail until Redis is back.
		log.Warn("Redis at %s is not reachable: %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)
	}
	pingCancel()

	// Repositories
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Services
	notificationSvc := notificationsService.NewService(
		notificationRepository,
		userRepository,
		bus,
		metricsCollector,
		log,
		cfg.Booking.NotificationsPageSize,
	)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		userRepository,
		notificationSvc,
		txMgr,
		metricsCollector,
		log,
		cfg.Booking.DefaultBookedBlockMinutes,
	)
	updateStatusUseCase := updateStatusUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		notificationSvc,
		txMgr,
		metricsCollector,
		log,
		cfg.Booking.DefaultBookedBlockMinutes,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		log,
		cfg.Booking.SlotStepMinutes,
		cfg.Booking.DefaultBookedBlockMinutes,
	)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	listBookedSlots := listBookedSlotsHandler.NewHandler(appointmentSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(getAvailableSlotsUseCase, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationSvc, log)
	markRead := markReadHandler.NewHandler(notificationSvc, log)
	stream := streamHandler.NewHandler(bus, cfg.Server.AllowedOrigins, log)
	health := healthHandler.NewHandler(map[string]healthHandler.Pinger{
		"postgres": wrappedDB,
		"redis":    healthHandler.PingerFunc(bus.Ping),
	}, log)

	tokens := jwt.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute, cfg.Auth.JWTIssuer)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/appointments/booked", listBookedSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/slot-availability", checkSlot.Handle).Methods(http.MethodGet)

	// Protected routes (Authorization: Bearer <jwt>)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read", markRead.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/stream", stream.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
