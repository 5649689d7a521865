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
	"github.com/MKhiriev/go-acme-cse/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	for _, line := range info.Lines() {
		fmt.Println(line)
	}

	log := logger.NewLogger("scheduler", "info")
	cfg, err := config.GetSchedulerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewLogger("scheduler", cfg.Logging.Level)

	log.Debug().Any("config", cfg.Scheduler).Msg("received configs")

	ctx := log.WithContext(context.Background())

	cse, err := adapter.NewHTTPCSEAdapter(adapter.CSEAdapterConfig{
		BaseURL:        cfg.Scheduler.CSEURL,
		Originator:     cfg.Scheduler.Originator,
		ReleaseVersion: cfg.Scheduler.ReleaseVersion,
		Timeout:        cfg.Scheduler.RequestTimeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating CSE adapter")
	}

	services, err := service.NewSchedulerServices(cse, cfg.Scheduler, info, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}
	defer services.ScheduleService.Stop()

	if cfg.Scheduler.RestoreEnabled() {
		if err = services.ScheduleService.Restore(ctx); err != nil {
			log.Warn().Err(err).Msg("could not restore schedule, waiting for notifications")
		}
	}

	handlers, err := handler.NewSchedulerHandlers(services, cfg.Scheduler, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Scheduler.CallbackAddress, cfg.Scheduler.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Fatal().Err(err).Msg("scheduler stopped")
	}
	log.Info().Msg("scheduler stopped")
}
