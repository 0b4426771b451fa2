package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/openlending/lending-reservations-go/lending"
	"github.com/openlending/lending-reservations-go/lending/httpapi"
	"github.com/openlending/lending-reservations-go/lending/logadapters"
	"github.com/openlending/lending-reservations-go/lending/mailer"
	"github.com/openlending/lending-reservations-go/lending/postgresengine"
)

const (
	poolMaxConnections    = int32(50)
	poolMinConnections    = int32(10)
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = time.Minute * 5
	poolHealthCheckPeriod = time.Minute
	poolConnectTimeout    = time.Second * 5

	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("lendingd terminated")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	zl := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	logger := logadapters.NewZerologAdapter(zl)

	pool, err := newPGXPool(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	stores, err := postgresengine.NewStoresFromPGXPool(pool, postgresengine.WithLogger(logger))
	if err != nil {
		return err
	}

	if cfg.EnsureSchema {
		if schemaErr := stores.EnsureSchema(context.Background()); schemaErr != nil {
			return schemaErr
		}
	}

	logSender, err := mailer.NewLogSender(logger)
	if err != nil {
		return err
	}

	sender, err := mailer.NewAsyncSender(logSender,
		mailer.WithWorkerCount(cfg.MailWorkers),
		mailer.WithQueueSize(cfg.MailQueueSize),
		mailer.WithAsyncLogger(logger))
	if err != nil {
		return err
	}

	engine, err := lending.NewEngine(stores, stores, sender, lending.WithLogger(logger))
	if err != nil {
		return err
	}

	handler, err := httpapi.NewHandler(engine, stores, httpapi.WithLogger(logger))
	if err != nil {
		return err
	}

	scheduler, err := newScheduler(cfg.MaintenanceSchedule, engine, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)

		if listenErr := server.ListenAndServe(); !errors.Is(listenErr, http.ErrServerClosed) {
			serverErr <- listenErr
		}
	}()

	scheduler.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-serverErr:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("http server shutdown failed", "error", shutdownErr.Error())
	}

	<-scheduler.Stop().Done()

	if senderErr := sender.Shutdown(shutdownCtx); senderErr != nil {
		logger.Error("mail sender shutdown failed", "error", senderErr.Error())
	}

	return nil
}

func newPGXPool(databaseURL string) (*pgxpool.Pool, error) {
	dbConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	dbConfig.MaxConns = poolMaxConnections
	dbConfig.MinConns = poolMinConnections
	dbConfig.MaxConnLifetime = poolMaxConnLifetime
	dbConfig.MaxConnIdleTime = poolMaxConnIdleTime
	dbConfig.HealthCheckPeriod = poolHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = poolConnectTimeout

	return pgxpool.NewWithConfig(context.Background(), dbConfig)
}

// newScheduler wires the daily maintenance run: overdue reminders first so
// members are notified before their lapsed reservations get swept away.
func newScheduler(spec string, engine lending.Engine, logger lending.Logger) (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(spec, func() {
		ctx := context.Background()

		if _, reminderErr := engine.SendOverdueReminders(ctx); reminderErr != nil {
			logger.Error("overdue reminder run failed", "error", reminderErr.Error())
		}

		if _, purgeErr := engine.PurgeExpiredReservations(ctx); purgeErr != nil {
			logger.Error("expiry sweep failed", "error", purgeErr.Error())
		}
	})
	if err != nil {
		return nil, err
	}

	return scheduler, nil
}
