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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/cancel_reservation"
	createPaymentHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/create_payment"
	createReservationHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/create_reservation"
	createSpotHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/create_spot"
	deleteSpotHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/delete_spot"
	getBusyIntervalsHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_busy_intervals"
	getDriverReportHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_driver_report"
	getMyPaymentsHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_my_payments"
	getMyReservationsHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_my_reservations"
	getMySpotsHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_my_spots"
	getOwnerPaymentsHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_owner_payments"
	getOwnerReportHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_owner_report"
	getOwnerReservationsHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_owner_reservations"
	getSpotHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/get_spot"
	searchSpotsHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/search_spots"
	updateReservationStatusHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/update_reservation_status"
	updateSpotHandler "github.com/AmeenKassem/EasyPark/internal/api/handlers/update_spot"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
	"github.com/AmeenKassem/EasyPark/internal/config"
	paymentRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/payment"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
	spotRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/spot"
	"github.com/AmeenKassem/EasyPark/internal/integrations/mailer"
	userServiceClient "github.com/AmeenKassem/EasyPark/internal/integrations/userservice"
	paymentsService "github.com/AmeenKassem/EasyPark/internal/service/payments"
	reportsService "github.com/AmeenKassem/EasyPark/internal/service/reports"
	reservationsService "github.com/AmeenKassem/EasyPark/internal/service/reservations"
	spotsService "github.com/AmeenKassem/EasyPark/internal/service/spots"
	createReservationUC "github.com/AmeenKassem/EasyPark/internal/usecase/create_reservation"
	"github.com/AmeenKassem/EasyPark/pkg/dbmetrics"
	"github.com/AmeenKassem/EasyPark/pkg/logger"
	"github.com/AmeenKassem/EasyPark/pkg/metrics"
	"github.com/AmeenKassem/EasyPark/pkg/simpletxmanager"
	"github.com/AmeenKassem/EasyPark/pkg/txmanager"
)

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

func main() {
	// Local development reads secrets from .env; in production the
	// variables come from the environment.
	_ = godotenv.Load()

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

	log.Info("Starting EasyPark...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	mail := mailer.New(cfg.Mail.APIKey, cfg.Mail.FromName, cfg.Mail.FromAddress, log)
	if cfg.Mail.APIKey == "" {
		log.Warn("SENDGRID_API_KEY is not set, approval emails are disabled")
	}
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	var (
		spots        *spotRepo.Repository
		reservations *reservationRepo.Repository
		payments     *paymentRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		spots = spotRepo.NewRepository(wrappedDB)
		reservations = reservationRepo.NewRepository(wrappedDB)
		payments = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		spots = spotRepo.NewRepository(db)
		reservations = reservationRepo.NewRepository(db)
		payments = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	clock := realTimeProvider{}

	reservationsSvc := reservationsService.NewService(reservations, spots, userClient, mail, clock, log)
	spotsSvc := spotsService.NewService(spots, reservations, txMgr, clock, log)
	paymentsSvc := paymentsService.NewService(payments, reservations, clock, log)
	reportsSvc := reportsService.NewService(reservations, spots, log)

	createReservationUseCase := createReservationUC.NewUseCase(reservations, spots, txMgr, log)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getMyReservations := getMyReservationsHandler.NewHandler(reservationsSvc, log)
	getOwnerReservations := getOwnerReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getBusyIntervals := getBusyIntervalsHandler.NewHandler(reservationsSvc, log)
	createSpot := createSpotHandler.NewHandler(spotsSvc, log)
	updateSpot := updateSpotHandler.NewHandler(spotsSvc, log)
	deleteSpot := deleteSpotHandler.NewHandler(spotsSvc, log)
	getSpot := getSpotHandler.NewHandler(spotsSvc, log)
	getMySpots := getMySpotsHandler.NewHandler(spotsSvc, log)
	searchSpots := searchSpotsHandler.NewHandler(spotsSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentsSvc, log)
	getMyPayments := getMyPaymentsHandler.NewHandler(paymentsSvc, log)
	getOwnerPayments := getOwnerPaymentsHandler.NewHandler(paymentsSvc, log)
	getOwnerReport := getOwnerReportHandler.NewHandler(reportsSvc, log)
	getDriverReport := getDriverReportHandler.NewHandler(reportsSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// All API routes require the gateway identity headers.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Identity(log))

	// Routes open to both roles.
	api.HandleFunc("/spots/search", searchSpots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spots/{spotId:[0-9]+}/busy", getBusyIntervals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spots/{spotId:[0-9]+}", getSpot.Handle).Methods(http.MethodGet)

	// Driver routes.
	driver := api.PathPrefix("").Subrouter()
	driver.Use(middleware.RequireRole(middleware.RoleDriver))
	driver.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	driver.HandleFunc("/reservations/my", getMyReservations.Handle).Methods(http.MethodGet)
	driver.HandleFunc("/reservations/{reservationId:[0-9]+}/cancel", cancelReservation.Handle).Methods(http.MethodPut)
	driver.HandleFunc("/payments", createPayment.Handle).Methods(http.MethodPost)
	driver.HandleFunc("/payments/my", getMyPayments.Handle).Methods(http.MethodGet)
	driver.HandleFunc("/reports/driver", getDriverReport.Handle).Methods(http.MethodGet)

	// Owner routes.
	owner := api.PathPrefix("").Subrouter()
	owner.Use(middleware.RequireRole(middleware.RoleOwner))
	owner.HandleFunc("/spots", createSpot.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/spots/my", getMySpots.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/spots/{spotId:[0-9]+}", updateSpot.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/spots/{spotId:[0-9]+}", deleteSpot.Handle).Methods(http.MethodDelete)
	owner.HandleFunc("/reservations/owner", getOwnerReservations.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/reservations/{reservationId:[0-9]+}/status", updateReservationStatus.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/payments/owner", getOwnerPayments.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/reports/owner", getOwnerReport.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
