package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/handler"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/server"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/internal/workers"
	"github.com/MKhiriev/go-acme-cse/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	log := logger.NewLogger("acmecse", "info")
	cfg, err := config.GetCSEConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewLogger("acmecse", cfg.Logging.Level)

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(log.WithContext(context.Background()))
	defer cancel()

	db, err := store.NewStorage(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storage")
	}
	defer db.Close()

	storages := store.NewStorages(db, log)

	sender := adapter.NewHTTPNotificationSender(adapter.NotificationSenderConfig{
		Originator:     cfg.CSE.CSEID,
		ReleaseVersion: cfg.CSE.ReleaseVersion,
		Timeout:        cfg.CSE.NotificationTimeout,
	}, log)
	dispatcher := workers.NewNotificationDispatcher(sender, cfg.CSE.NotificationWorkers, cfg.CSE.NotificationTimeout, log)

	services, err := service.NewServices(storages, sender, dispatcher, cfg, info, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.ResourceService.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("error bootstrapping CSEBase")
	}

	background := workers.NewWorkers(
		dispatcher,
		workers.NewExpirationWorker(services.ResourceService, cfg.CSE.CheckExpirationsInterval, log),
	)
	background.Run(ctx)

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.HTTP.ListenAddress(), cfg.HTTP.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	runErr := srv.RunServer()

	cancel()
	background.Stop()
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("CSE stopped")
	}
	log.Info().Msg("CSE stopped")
}

func printBuildInfo(info models.AppBuildInfo) {
	for _, line := range info.Lines() {
		fmt.Println(line)
	}
}
