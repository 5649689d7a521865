package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

// NotificationSenderConfig configures [NewHTTPNotificationSender].
type NotificationSenderConfig struct {
	// Originator is the CSE-ID sent in X-M2M-Origin.
	Originator     string
	ReleaseVersion string
	Timeout        time.Duration
	// MaxFailures consecutive transport failures open the breaker of a target
	// host for OpenTimeout. Error answers of the host do not count.
	MaxFailures uint32
	OpenTimeout time.Duration
}

type httpNotificationSender struct {
	client *utils.HTTPClient
	cfg    NotificationSenderConfig

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker

	logger *logger.Logger
}

// NewHTTPNotificationSender returns a [NotificationSender] that POSTs
// notifications and isolates failing target hosts behind circuit breakers.
func NewHTTPNotificationSender(cfg NotificationSenderConfig, logger *logger.Logger) NotificationSender {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	return &httpNotificationSender{
		client:   utils.NewHTTPClient(cfg.Timeout),
		cfg:      cfg,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		logger:   logger,
	}
}

func (s *httpNotificationSender) Notify(ctx context.Context, target string, n models.Notification) error {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: unsupported notification uri %q", ErrTargetNotReachable, target)
	}

	body, err := json.Marshal(models.NotificationEnvelope{Notification: n})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	_, err = s.breakerFor(u.Host).Execute(func() (interface{}, error) {
		req := s.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", models.MediaTypeJSON).
			SetHeader(models.HeaderOrigin, s.cfg.Originator).
			SetHeader(models.HeaderRequestID, utils.RandomString(requestIDLength)).
			SetBody(body)
		if s.cfg.ReleaseVersion != "" {
			req.SetHeader(models.HeaderReleaseVersion, s.cfg.ReleaseVersion)
		}

		resp, postErr := req.Post(target)
		if postErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrTargetNotReachable, postErr)
		}
		return nil, mapHTTPError(resp)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: breaker (%s): %w", ErrTargetNotReachable, u.Host, err)
	}
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("target", target).Msg("notification failed")
	}
	return err
}

func (s *httpNotificationSender) breakerFor(host string) *gobreaker.CircuitBreaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cb, ok := s.breakers[host]; ok {
		return cb
	}

	maxFailures := s.cfg.MaxFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Timeout:     s.cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// the host answered; a rejected notification says nothing about its health
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrTargetNotReachable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Info().Str("target", name).Str("from", from.String()).Str("to", to.String()).Msg("notification breaker state changed")
		},
	})
	s.breakers[host] = cb
	return cb
}
