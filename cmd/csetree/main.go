package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/tui"
	"github.com/MKhiriev/go-acme-cse/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	configPath := flag.String("c", "", "path to acme.ini")
	flag.Parse()

	cfg, err := config.LoadProvisionConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		os.Exit(1)
	}

	log := logger.NewFileLogger("csetree", cfg.Logging.Level)

	cse, err := adapter.NewHTTPCSEAdapter(adapter.CSEAdapterConfig{
		BaseURL:        cfg.Provision.CSEURL,
		Originator:     cfg.Provision.Originator,
		ReleaseVersion: cfg.Provision.ReleaseVersion,
		Token:          cfg.Provision.Token,
		Timeout:        cfg.Provision.RequestTimeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating CSE adapter")
	}

	tree := service.NewResourceTreeService(cse, cfg.CSE.ResourceName, log)

	if err = tui.New(tree, info, log).Run(log.WithContext(context.Background())); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
