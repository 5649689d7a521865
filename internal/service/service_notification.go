package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/models"
)

// NotificationDispatcher queues notifications for asynchronous delivery.
// Submit reports false when the notification was dropped.
type NotificationDispatcher interface {
	Submit(target string, n models.Notification) bool
}

type notificationService struct {
	repo       store.ResourceRepository
	sender     adapter.NotificationSender
	dispatcher NotificationDispatcher

	timeout time.Duration

	logger *logger.Logger
}

// NewNotificationService constructs a [NotificationService]. Event
// notifications go through dispatcher when asynchronous notifications are
// enabled, verification requests are always sent inline.
func NewNotificationService(repo store.ResourceRepository, sender adapter.NotificationSender, dispatcher NotificationDispatcher, cfg config.CSE, logger *logger.Logger) NotificationService {
	s := &notificationService{
		repo:    repo,
		sender:  sender,
		timeout: cfg.NotificationTimeout,
		logger:  logger,
	}
	if cfg.AsyncNotifications() {
		s.dispatcher = dispatcher
	}
	return s
}

func (s *notificationService) VerifySubscription(ctx context.Context, sub models.Resource, originator, target string) error {
	uri, err := s.resolveTarget(ctx, target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscriptionVerificationFailed, err)
	}

	n := models.Notification{
		VerificationRequest:   models.Bool(true),
		SubscriptionReference: sub.StructuredPath,
		Creator:               originator,
	}

	sendCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err = s.sender.Notify(sendCtx, uri, n); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("nu", target).Msg("subscription verification failed")
		return fmt.Errorf("%w: %s: %w", ErrSubscriptionVerificationFailed, target, err)
	}

	return nil
}

func (s *notificationService) NotifyEvent(ctx context.Context, subject models.Resource, net models.NotificationEventType, res models.Resource, modified []string) {
	log := logger.FromContext(ctx)

	subs, err := s.repo.Children(ctx, subject.ResourceID, models.TypeSubscription)
	if err != nil {
		log.Err(err).Str("func", "*notificationService.NotifyEvent").Str("subject", subject.ResourceID).Msg("error loading subscriptions")
		return
	}

	for _, sub := range subs {
		enc := sub.EventNotificationCriteria
		if !enc.ContainsEvent(net) {
			continue
		}
		if (net == models.EventCreateDirectChild || net == models.EventDeleteDirectChild) && !enc.ContainsChildType(res.Type) {
			continue
		}

		rep, repErr := representation(sub, res, modified)
		if repErr != nil {
			log.Err(repErr).Str("sub", sub.ResourceID).Msg("error building notification content")
			continue
		}

		n := models.Notification{
			Event:                 &models.NotificationEvent{Representation: rep, EventType: net},
			SubscriptionReference: sub.StructuredPath,
			Creator:               sub.Creator,
		}
		for _, nu := range sub.NotificationURIs {
			s.deliver(ctx, nu, n)
		}

		// a subscription on a deleted subject goes away with it and gets its
		// deletion notice from the delete itself
		if net != models.EventDelete {
			s.countDown(ctx, sub)
		}
	}
}

func (s *notificationService) NotifySubscriptionDeleted(ctx context.Context, sub models.Resource) {
	if sub.SubscriberURI == "" {
		return
	}

	s.deliver(ctx, sub.SubscriberURI, models.Notification{
		SubscriptionDeletion:  models.Bool(true),
		SubscriptionReference: sub.StructuredPath,
		Creator:               sub.Creator,
	})
}

// countDown decrements the expiration counter of sub and removes the
// subscription when it reaches zero.
func (s *notificationService) countDown(ctx context.Context, sub models.Resource) {
	if sub.ExpirationCounter == nil {
		return
	}
	log := logger.FromContext(ctx)

	left := *sub.ExpirationCounter - 1
	if left <= 0 {
		if err := s.repo.Delete(ctx, sub.ResourceID); err != nil {
			log.Err(err).Str("sub", sub.ResourceID).Msg("error deleting exhausted subscription")
			return
		}
		log.Info().Str("sub", sub.StructuredPath).Msg("subscription expiration counter reached zero")
		s.NotifySubscriptionDeleted(ctx, sub)
		return
	}

	sub.ExpirationCounter = &left
	if err := s.repo.Update(ctx, sub); err != nil {
		log.Err(err).Str("sub", sub.ResourceID).Msg("error updating subscription expiration counter")
	}
}

func (s *notificationService) deliver(ctx context.Context, nu string, n models.Notification) {
	log := logger.FromContext(ctx)

	uri, err := s.resolveTarget(ctx, nu)
	if err != nil {
		log.Warn().Err(err).Str("nu", nu).Msg("notification target cannot be resolved")
		return
	}

	if s.dispatcher != nil {
		if !s.dispatcher.Submit(uri, n) {
			log.Warn().Str("nu", uri).Msg("notification queue is full, notification dropped")
		}
		return
	}

	sendCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err = s.sender.Notify(sendCtx, uri, n); err != nil {
		log.Warn().Err(err).Str("nu", uri).Msg("error sending notification")
	}
}

// resolveTarget turns a notification URI into an URL. Values other than
// http(s) URLs address an AE by identifier or structured path, which is then
// reached through its first point of access.
func (s *notificationService) resolveTarget(ctx context.Context, nu string) (string, error) {
	if strings.HasPrefix(nu, "http://") || strings.HasPrefix(nu, "https://") {
		return nu, nil
	}

	key := strings.TrimPrefix(nu, "/")
	ae, err := s.repo.Get(ctx, key)
	if errors.Is(err, store.ErrResourceNotFound) {
		ae, err = s.repo.GetByPath(ctx, key)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTargetNotReachable, nu, err)
	}

	if ae.Type != models.TypeAE || len(ae.PointOfAccess) == 0 {
		return "", fmt.Errorf("%w: %s has no point of access", ErrTargetNotReachable, nu)
	}
	return ae.PointOfAccess[0], nil
}

func (s *notificationService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// representation builds nev/rep according to the notification content type
// of sub.
func representation(sub models.Resource, res models.Resource, modified []string) ([]byte, error) {
	nct := models.ContentAllAttributes
	if sub.NotificationContentType != nil {
		nct = *sub.NotificationContentType
	}

	switch nct {
	case models.ContentModifiedAttributes:
		if modified == nil {
			return res.MarshalWrapped()
		}
		picked, err := models.PickAttributes(res, modified)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]any{res.Type.ShortName(): picked})
	case models.ContentResourceID:
		return json.Marshal(map[string]string{"m2m:uri": res.ResourceID})
	default:
		return res.MarshalWrapped()
	}
}
