// Package cli implements the provision command line tool.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/models"
)

// deps are the collaborators of the commands. Tests replace them.
type deps struct {
	out     io.Writer
	environ func() []string
	loader  store.CollectionLoader
	// newService builds the provision service for the resolved configuration.
	newService func(cfg *config.StructuredConfig, log *logger.Logger) (service.ProvisionService, error)
}

func defaultDeps() *deps {
	return &deps{
		out:        os.Stdout,
		environ:    os.Environ,
		loader:     store.NewFileCollectionLoader(),
		newService: newProvisionService,
	}
}

func Execute(info models.AppBuildInfo) {
	if err := newRootCmd(info, defaultDeps()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(info models.AppBuildInfo, d *deps) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "provision",
		Short:        "Provision the resources of the noise cancellation system in a CSE",
		SilenceUsage: true,
		Version:      info.BuildVersion(),
	}
	cmd.SetVersionTemplate(strings.Join(info.Lines(), "\n") + "\n")
	cmd.SetOut(d.out)

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to acme.ini (defaults to CONFIG, then ./acme.ini)")

	cmd.AddCommand(
		runCmd(&configPath, d),
		validateCmd(d),
		tokenCmd(&configPath, d),
	)
	return cmd
}

func newProvisionService(cfg *config.StructuredConfig, log *logger.Logger) (service.ProvisionService, error) {
	cse, err := adapter.NewHTTPCSEAdapter(adapter.CSEAdapterConfig{
		BaseURL:        cfg.Provision.CSEURL,
		Originator:     cfg.Provision.Originator,
		ReleaseVersion: cfg.Provision.ReleaseVersion,
		Token:          cfg.Provision.Token,
		Timeout:        cfg.Provision.RequestTimeout,
	}, log)
	if err != nil {
		return nil, err
	}
	return service.NewProvisionService(cse, log), nil
}
