package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-acme-cse/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=ResourceServiceWrapper

// ResourceService executes oneM2M request primitives against the resource
// tree of the CSE.
type ResourceService interface {
	// Handle dispatches req on its operation.
	Handle(ctx context.Context, req models.Request) (models.Response, error)

	Create(ctx context.Context, req models.Request) (models.Response, error)
	Retrieve(ctx context.Context, req models.Request) (models.Response, error)
	Discover(ctx context.Context, req models.Request) (models.Response, error)
	Update(ctx context.Context, req models.Request) (models.Response, error)
	Delete(ctx context.Context, req models.Request) (models.Response, error)

	// RemoveExpired deletes every resource whose expiration time has passed
	// and returns how many subtrees were removed.
	RemoveExpired(ctx context.Context) (int, error)

	// Bootstrap creates the CSEBase and the admin ACP on an empty store.
	Bootstrap(ctx context.Context) error
}

// SecurityService decides whether an originator may execute an operation on
// a resource.
type SecurityService interface {
	// CheckAccess returns ErrOriginatorHasNoPrivilege when originator may not
	// execute op on target. childType is the type of the resource being
	// created and is ignored for other operations.
	CheckAccess(ctx context.Context, originator string, op models.Operation, target models.Resource, childType models.ResourceType) error
}

// NotificationService delivers subscription notifications.
type NotificationService interface {
	// VerifySubscription sends a verification request for sub to target and
	// waits for the answer.
	VerifySubscription(ctx context.Context, sub models.Resource, originator, target string) error

	// NotifyEvent notifies the subscriptions of subject about an event on res.
	// For update events modified lists the changed attributes.
	NotifyEvent(ctx context.Context, subject models.Resource, net models.NotificationEventType, res models.Resource, modified []string)

	// NotifySubscriptionDeleted sends a deletion notice to the subscriber of sub.
	NotifySubscriptionDeleted(ctx context.Context, sub models.Resource)
}

// ExecutionStateService writes noise cancellation states to the CSE.
type ExecutionStateService interface {
	SetState(ctx context.Context, state models.ExecutionState) error
}

// ScheduleService keeps the daily noise cancellation schedule of the
// scheduler binary.
type ScheduleService interface {
	// HandleNotification applies the schedule carried by a notification from
	// the schedule container subscription.
	HandleNotification(ctx context.Context, n models.Notification) error

	// Apply replaces the active schedule with w.
	Apply(ctx context.Context, w models.ScheduleWindow) error

	// Current returns the active schedule.
	Current(now time.Time) (models.ScheduleStatus, error)

	// Restore applies the latest schedule stored in the CSE.
	Restore(ctx context.Context) error

	// Stop cancels all scheduled jobs.
	Stop()
}

// ProvisionService runs provisioning collections against a CSE.
type ProvisionService interface {
	// Run executes the requests of col in order and stops at the first
	// failure. overrides take precedence over the collection variables.
	Run(ctx context.Context, col models.Collection, overrides map[string]string) (models.CollectionRun, error)
}

// ResourceTreeService browses and edits the resource tree of a remote CSE.
type ResourceTreeService interface {
	// Load discovers every resource below the CSEBase. Parents precede their
	// children.
	Load(ctx context.Context) ([]models.TreeNode, error)

	Get(ctx context.Context, path string) (models.Resource, error)
	Delete(ctx context.Context, path string) error

	// AddContentInstance creates a content instance holding con in the
	// container at containerPath.
	AddContentInstance(ctx context.Context, containerPath, con string) (models.Resource, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// ResourceServiceWrapper decorates a ResourceService, e.g. with request
// validation.
type ResourceServiceWrapper interface {
	Wrap(ResourceService) ResourceService
}
