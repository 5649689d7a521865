package service

import (
	"fmt"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/models"
)

// Services groups the services of the CSE binary.
type Services struct {
	ResourceService     ResourceService
	SecurityService     SecurityService
	NotificationService NotificationService
	AppInfoService      AppInfoService
}

// NewServices wires the CSE services on top of storages. The resource
// service is wrapped with request validation.
func NewServices(storages *store.Storages, sender adapter.NotificationSender, dispatcher NotificationDispatcher, cfg *config.StructuredConfig, info models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(info, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	security := NewSecurityService(storages.ResourceRepository, cfg.CSE, logger)
	notifications := NewNotificationService(storages.ResourceRepository, sender, dispatcher, cfg.CSE, logger)
	resources := NewResourceService(storages.ResourceRepository, security, notifications, NewMonotonicClock(), cfg, logger)

	return &Services{
		ResourceService:     NewResourceValidationService(cfg.CSE.SupportedReleaseVersions).Wrap(resources),
		SecurityService:     security,
		NotificationService: notifications,
		AppInfoService:      appInfo,
	}, nil
}

// SchedulerServices groups the services of the scheduler binary.
type SchedulerServices struct {
	ExecutionStateService ExecutionStateService
	ScheduleService       ScheduleService
	AppInfoService        AppInfoService
}

// NewSchedulerServices wires the scheduler services on top of a CSE adapter.
func NewSchedulerServices(cse adapter.CSEAdapter, cfg config.Scheduler, info models.AppBuildInfo, logger *logger.Logger) (*SchedulerServices, error) {
	appInfo, err := NewAppInfoService(info, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	states := NewExecutionStateService(cse, cfg.ExecutionStateContainer, logger)

	return &SchedulerServices{
		ExecutionStateService: states,
		ScheduleService:       NewScheduleService(cse, states, cfg.ScheduleContainer, cfg.Location(), logger),
		AppInfoService:        appInfo,
	}, nil
}
