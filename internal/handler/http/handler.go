package http

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
)

// Handler is the oneM2M HTTP binding of the CSE.
type Handler struct {
	services *service.Services

	root           string
	releaseVersion string
	admin          string
	metricsEnabled bool

	basicAuth   utils.BasicAuthCredentials
	tokenAuth   bool
	tokenKey    string
	tokenIssuer string

	logger *logger.Logger
}

// NewHandler builds the binding from cfg. The basic auth file is loaded here
// so that a broken file fails the startup.
func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	h := &Handler{
		services:       services,
		root:           normalizeRoot(cfg.HTTP.Root),
		releaseVersion: cfg.CSE.ReleaseVersion,
		admin:          cfg.CSE.Originator,
		metricsEnabled: cfg.HTTP.MetricsEnabled(),
		tokenAuth:      cfg.HTTP.Security.TokenAuthEnabled(),
		tokenKey:       cfg.HTTP.Security.TokenSignKey,
		tokenIssuer:    cfg.HTTP.Security.TokenIssuer,
		logger:         logger,
	}

	if cfg.HTTP.Security.BasicAuthEnabled() {
		creds, err := utils.LoadBasicAuthFile(cfg.HTTP.Security.BasicAuthFile)
		if err != nil {
			return nil, fmt.Errorf("error loading basic auth credentials: %w", err)
		}
		h.basicAuth = creds
	}

	logger.Info().Str("root", h.root).Msg("http handler created")
	return h, nil
}

// normalizeRoot returns root with a leading and without a trailing slash.
// The empty root is "/".
func normalizeRoot(root string) string {
	root = "/" + strings.Trim(strings.TrimSpace(root), "/")
	return root
}
