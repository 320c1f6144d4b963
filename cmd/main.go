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

	completeAppointmentHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/complete_appointment"
	contactDelinquentHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/contact_delinquent"
	createAppointmentHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/create_appointment"
	createDelinquentHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/create_delinquent"
	deleteAppointmentHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/get_appointment"
	getOverviewHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/get_overview"
	getScheduleHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/list_appointments"
	listClientsHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/list_clients"
	listDelinquentsHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/list_delinquents"
	listLogsHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/list_logs"
	listServicesHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/list_services"
	loginHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/login"
	settleDelinquentHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/settle_delinquent"
	updateAppointmentHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/update_appointment"
	wsHandler "github.com/barbearia-jao/agenda-service/internal/api/handlers/ws"
	"github.com/barbearia-jao/agenda-service/internal/api/middleware"
	"github.com/barbearia-jao/agenda-service/internal/config"
	appointmentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/appointment"
	catalogRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/catalog"
	clientRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/client"
	delinquentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/delinquent"
	paymentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/payment"
	systemlogRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/systemlog"
	userRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/user"
	"github.com/barbearia-jao/agenda-service/internal/integrations/whatsapp"
	"github.com/barbearia-jao/agenda-service/internal/realtime"
	appointmentsService "github.com/barbearia-jao/agenda-service/internal/service/appointments"
	authService "github.com/barbearia-jao/agenda-service/internal/service/auth"
	catalogService "github.com/barbearia-jao/agenda-service/internal/service/catalog"
	clientsService "github.com/barbearia-jao/agenda-service/internal/service/clients"
	delinquentsService "github.com/barbearia-jao/agenda-service/internal/service/delinquents"
	syslogsService "github.com/barbearia-jao/agenda-service/internal/service/syslogs"
	completeAppointmentUC "github.com/barbearia-jao/agenda-service/internal/usecase/complete_appointment"
	createAppointmentUC "github.com/barbearia-jao/agenda-service/internal/usecase/create_appointment"
	getScheduleUC "github.com/barbearia-jao/agenda-service/internal/usecase/get_schedule"
	updateAppointmentUC "github.com/barbearia-jao/agenda-service/internal/usecase/update_appointment"
	"github.com/barbearia-jao/agenda-service/internal/worker"
	"github.com/barbearia-jao/agenda-service/pkg/cache"
	"github.com/barbearia-jao/agenda-service/pkg/logger"
	"github.com/barbearia-jao/agenda-service/pkg/metrics"
	"github.com/barbearia-jao/agenda-service/pkg/txmanager"
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

	log.Info("Starting agenda-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled {
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

	// Подключаемся к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	lookupCache := cache.New(rdb, cfg.Metrics.ServiceName)
	cacheTTL := time.Duration(cfg.Redis.TTLSeconds) * time.Second

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(db)
	clientRepository := clientRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	delinquentRepository := delinquentRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)
	systemLogRepository := systemlogRepo.NewRepository(db)
	userRepository := userRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Realtime hub: изменения данных рассылаются всем открытым админ-панелям
	hub := realtime.NewHub(log)
	go hub.Run()

	timeProvider := &createAppointmentUC.RealTimeProvider{}

	// WhatsApp deep-link'и
	waLinker := whatsapp.NewLinker(cfg.WhatsApp.ChargeTemplate, cfg.WhatsApp.ReminderTemplate)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		paymentRepository,
		waLinker,
		hub,
		txMgr,
		log,
	)
	clientsSvc := clientsService.NewService(clientRepository, lookupCache, cacheTTL, log)
	catalogSvc := catalogService.NewService(catalogRepository, lookupCache, cacheTTL, log)
	delinquentsSvc := delinquentsService.NewService(
		delinquentRepository,
		appointmentRepository,
		paymentRepository,
		systemLogRepository,
		waLinker,
		hub,
		txMgr,
		timeProvider,
		log,
	)
	syslogsSvc := syslogsService.NewService(systemLogRepository, log)
	authSvc := authService.NewService(
		userRepository,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		timeProvider,
		log,
	)

	// Учетная запись администратора для первого запуска
	if cfg.Auth.AdminEmail != "" {
		if err := authSvc.EnsureAdmin(context.Background(), cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminName); err != nil {
			log.Fatal("Failed to ensure admin user: %v", err)
		}
	}

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		clientsSvc,
		catalogSvc,
		delinquentRepository,
		systemLogRepository,
		hub,
		txMgr,
		metricsCollector.BookingConflicts,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		hub,
		txMgr,
		metricsCollector.BookingConflicts,
		log,
	)
	getScheduleUseCase := getScheduleUC.NewUseCase(appointmentRepository, log)
	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		paymentRepository,
		delinquentRepository,
		systemLogRepository,
		hub,
		txMgr,
		log,
	)

	// Фоновая задача автозавершения прошедших записей
	sweeper := worker.NewSweeper(
		appointmentRepository,
		systemLogRepository,
		hub,
		timeProvider,
		metricsCollector.SweepPromotions,
		log,
	)
	if err := sweeper.Start(cfg.Worker.SweepIntervalMinutes); err != nil {
		log.Fatal("Failed to start sweep worker: %v", err)
	}

	// Инициализируем handlers
	login := loginHandler.NewHandler(authSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, log)
	completeAppointment := completeAppointmentHandler.NewHandler(completeAppointmentUseCase, log)
	listDelinquents := listDelinquentsHandler.NewHandler(delinquentsSvc, log)
	createDelinquent := createDelinquentHandler.NewHandler(delinquentsSvc, log)
	settleDelinquent := settleDelinquentHandler.NewHandler(delinquentsSvc, log)
	contactDelinquent := contactDelinquentHandler.NewHandler(delinquentsSvc, log)
	getOverview := getOverviewHandler.NewHandler(appointmentsSvc, timeProvider, log)
	listClients := listClientsHandler.NewHandler(clientsSvc, log)
	listLogs := listLogsHandler.NewHandler(syslogsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	ws := wsHandler.NewHandler(hub, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Аутентификация (публичный маршрут)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Все остальное требует Bearer-токен
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc))

	// --- Агенда ---
	protected.HandleFunc("/agenda", getSchedule.Handle).Methods(http.MethodGet)

	// --- Агендаменты ---
	protected.HandleFunc("/agendamentos", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/agendamentos", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/agendamentos/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/agendamentos/{id}", updateAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/agendamentos/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/agendamentos/{id}/concluir", completeAppointment.Handle).Methods(http.MethodPost)

	// --- Инадимплентес ---
	protected.HandleFunc("/inadimplentes", listDelinquents.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/inadimplentes", createDelinquent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/inadimplentes/{id}/quitar", settleDelinquent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/inadimplentes/{id}/cobrar", contactDelinquent.Handle).Methods(http.MethodPost)

	// --- Справочники и сводка ---
	protected.HandleFunc("/clientes", listClients.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/servicos", listServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard", getOverview.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/logs", listLogs.Handle).Methods(http.MethodGet)

	// --- Realtime ---
	protected.HandleFunc("/ws", ws.Handle).Methods(http.MethodGet)

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

	sweeper.Stop()
	hub.Stop()

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
