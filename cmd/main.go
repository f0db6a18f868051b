package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"energy_gauge/internal/config"
	"energy_gauge/internal/device"
	"energy_gauge/internal/energy"
	"energy_gauge/internal/handlers"
	"energy_gauge/internal/logger"
	"energy_gauge/internal/publisher"
	"energy_gauge/internal/repository"
	"energy_gauge/internal/repository/db"
	"energy_gauge/internal/server"
	"energy_gauge/internal/service"
)

const (
	defaultPort     = "8080"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// config first so the logger can take its level from it
	cfg, cfgErr := config.Load()
	log := logger.Get(cfg.LogLevel)
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	sqlDB, err := openDB(cfg.DBPath, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	client := device.NewClient(cfg.Device.Host, cfg.Device.Timeout)
	log.Infow("device_configured", "url", client.URL(), "interval", cfg.Device.Interval.String(),
		"timeout", cfg.Device.Timeout.String(), "drop_stale", cfg.Device.DropStale)

	var publishers []service.Publisher
	if cfg.MQTT.Enabled {
		mq, err := publisher.Connect(publisher.MQTTConfig{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
		}, log)
		if err != nil {
			log.Fatalw("failed to connect mqtt", "err", err)
		}
		defer mq.Close()
		publishers = append(publishers, mq)
	}

	services := service.NewService(repos, client, service.DashboardOptions{
		Tariff: energy.Tariff{
			JouleToKWh: cfg.Tariff.JouleToKWh,
			CostPerKWh: cfg.Tariff.CostPerKWh,
		},
		Currency:  cfg.Tariff.Currency,
		DropStale: cfg.Device.DropStale,
	}, log, publishers...)
	apiHandler := handlers.NewHandler(services, log).WithRefresh(cfg.Device.Interval)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		services.Poller.Run(ctx, cfg.Device.Interval)
	}()

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, pollerDone, srv, log)
}

// openDB initializes the SQLite journal.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		path = "app.db"
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	if port == "" {
		port = defaultPort
	}
	go func() {
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, pollerDone <-chan struct{}, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the poller; in-flight device requests are canceled with it
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	select {
	case <-pollerDone:
	case <-ctx.Done():
		log.Warnw("poller did not stop in time")
	}
	_ = log.Sync()
}
